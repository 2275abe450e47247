package asset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Ealfred1/ResQ-X-checklist/internal/storage"
)

// FSSource reads assets from a file system, usually the embedded static tree.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Fetch(_ context.Context, p string) (*Asset, error) {
	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &Asset{
		Name:        path.Base(name),
		ContentType: contentType("", name, data),
		Data:        data,
	}, nil
}

// objectStore is implemented by *storage.Service.
type objectStore interface {
	Get(ctx context.Context, key string) (*storage.Object, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// ObjectSource reads assets from the object storage bucket.
type ObjectSource struct {
	store objectStore
}

func NewObjectSource(store objectStore) *ObjectSource {
	return &ObjectSource{store: store}
}

// Check reports whether p can be served, without downloading it.
func (s *ObjectSource) Check(ctx context.Context, p string) error {
	key := strings.TrimPrefix(p, "/")
	ok, err := s.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return nil
}

func (s *ObjectSource) Fetch(ctx context.Context, p string) (*Asset, error) {
	key := strings.TrimPrefix(p, "/")
	obj, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return nil, err
	}
	return &Asset{
		Name:        path.Base(key),
		ContentType: contentType(obj.ContentType, key, obj.Data),
		Data:        obj.Data,
	}, nil
}

// HTTPSource fetches {base}/{path} with a plain GET, no credentials or query.
type HTTPSource struct {
	rc *resty.Client
}

// NewHTTPSource creates a source for the origin at baseURL.
func NewHTTPSource(baseURL, userAgent string) *HTTPSource {
	rc := resty.New().SetBaseURL(strings.TrimRight(baseURL, "/"))
	if userAgent != "" {
		rc.SetHeader("User-Agent", userAgent)
	}
	return &HTTPSource{rc: rc}
}

func (s *HTTPSource) Fetch(ctx context.Context, p string) (*Asset, error) {
	p = "/" + strings.TrimPrefix(p, "/")
	resp, err := s.rc.R().SetContext(ctx).Get(p)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
	case resp.StatusCode() < 200 || resp.StatusCode() >= 300:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", p, resp.StatusCode())
	}

	data := resp.Body()
	return &Asset{
		Name:        path.Base(p),
		ContentType: contentType(resp.Header().Get("Content-Type"), p, data),
		Data:        data,
	}, nil
}
