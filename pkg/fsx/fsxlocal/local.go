package fsxlocal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/skillbridge/pkg/fsx"
)

// LocalFileSystem stores files below a root directory. It backs uploads
// when no bucket is configured.
type LocalFileSystem struct {
	root    string
	baseURL string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

func NewLocalFileSystem(root, baseURL string) *LocalFileSystem {
	return &LocalFileSystem{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// resolve maps a slash path into root, refusing escapes
func (fs *LocalFileSystem) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" {
		return "", fmt.Errorf("invalid path %q", p)
	}
	return filepath.Join(fs.root, filepath.FromSlash(clean)), nil
}

func (fs *LocalFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (fs *LocalFileSystem) URL(p string) string {
	return fs.baseURL + path.Clean("/"+p)
}

func (fs *LocalFileSystem) ReadFile(_ context.Context, p string) ([]byte, error) {
	full, err := fs.resolve(p)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

func (fs *LocalFileSystem) ReadFileStream(_ context.Context, p string) (io.ReadCloser, error) {
	full, err := fs.resolve(p)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (fs *LocalFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	return fs.WriteFileStream(ctx, p, bytes.NewReader(data))
}

func (fs *LocalFileSystem) WriteFileStream(_ context.Context, p string, r io.Reader) error {
	full, err := fs.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", p, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create %s: %w", p, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", p, err)
	}
	return f.Close()
}

// DeleteFile removes p; a missing file is not an error
func (fs *LocalFileSystem) DeleteFile(_ context.Context, p string) error {
	full, err := fs.resolve(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
