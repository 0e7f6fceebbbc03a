// Package localfs stores document content on the local filesystem.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
)

// Storage writes objects below a root directory and serves them under a base URL.
type Storage struct {
	root    string
	baseURL string
}

var _ portsrepo.DocumentStorage = (*Storage)(nil)

// New creates the root directory if needed.
func New(root, baseURL string) (*Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("document storage directory cannot be empty")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create document storage directory: %w", err)
	}
	return &Storage{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Storage) path(key string) (string, error) {
	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", fmt.Errorf("%w: invalid storage key %q", apperrors.ErrValidation, key)
		}
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// Put streams content to a temporary file and renames it into place once fully written.
func (s *Storage) Put(ctx context.Context, key string, content io.Reader, _ string) (int64, error) {
	target, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: content})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return n, ctxErr
		}
		return n, fmt.Errorf("%w: write %s: %v", apperrors.ErrTransient, key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return n, fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
	}
	return n, nil
}

// Delete removes the object. Missing objects are ignored.
func (s *Storage) Delete(_ context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: delete %s: %v", apperrors.ErrTransient, key, err)
	}
	return nil
}

func (s *Storage) DownloadURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.baseURL + "/" + strings.Join(parts, "/")
}

// Open returns the stored object for download handlers.
func (s *Storage) Open(key string) (*os.File, error) {
	target, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.NewNotFoundError("document content not found")
	}
	return f, err
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
