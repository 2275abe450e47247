// Package asset fetches the guide and hands it to whoever keeps it: an HTTP
// response on the server, a directory on disk in the CLI.
package asset

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"path"
)

// ErrNotFound is returned by a Source when nothing is stored at the path.
var ErrNotFound = errors.New("asset not found")

// Asset is a fetched blob. It is handed to a Saver and then dropped.
type Asset struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the blob length in bytes.
func (a *Asset) Size() int {
	return len(a.Data)
}

// Source fetches an asset by path.
type Source interface {
	Fetch(ctx context.Context, path string) (*Asset, error)
}

// Checker is implemented by sources that can confirm an asset is available
// more cheaply than fetching it.
type Checker interface {
	Check(ctx context.Context, path string) error
}

// Saver keeps a fetched asset under filename.
type Saver interface {
	Save(ctx context.Context, filename string, a *Asset) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, filename string, a *Asset) error

func (f SaverFunc) Save(ctx context.Context, filename string, a *Asset) error {
	return f(ctx, filename, a)
}

// contentType picks the declared type, falling back to the extension and
// finally to sniffing.
func contentType(declared, name string, data []byte) string {
	if declared != "" {
		return declared
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
