package asset

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// ErrAlreadySaved is returned by single-use savers on their second Save.
var ErrAlreadySaved = errors.New("asset already saved")

// AttachmentSaver writes the asset as the body of an HTTP response so the
// browser stores it as a download. It is single use.
type AttachmentSaver struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	written bool
}

func NewAttachmentSaver(w http.ResponseWriter) *AttachmentSaver {
	return &AttachmentSaver{w: w}
}

func (s *AttachmentSaver) Save(ctx context.Context, filename string, a *Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.written {
		return ErrAlreadySaved
	}
	s.written = true

	h := s.w.Header()
	h.Set("Content-Type", contentType(a.ContentType, filename, a.Data))
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	h.Set("Content-Length", strconv.Itoa(a.Size()))
	h.Set("Cache-Control", "no-store")
	s.w.WriteHeader(http.StatusOK)

	if _, err := s.w.Write(a.Data); err != nil {
		return fmt.Errorf("write attachment: %w", err)
	}
	return nil
}

// Written reports whether a response body has been produced.
func (s *AttachmentSaver) Written() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

// FileSaver stores assets in a directory. The file is written to a temporary
// name first and renamed into place, so a failed save leaves nothing behind.
type FileSaver struct {
	Dir string

	mu   sync.Mutex
	last string
}

func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{Dir: dir}
}

func (s *FileSaver) Save(ctx context.Context, filename string, a *Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return fmt.Errorf("invalid filename %q", filename)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.Dir, err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+base+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	dest := filepath.Join(s.Dir, base)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move into %s: %w", dest, err)
	}

	s.mu.Lock()
	s.last = dest
	s.mu.Unlock()
	return nil
}

// LastPath returns where the most recent Save put its file.
func (s *FileSaver) LastPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
