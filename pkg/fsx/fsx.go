package fsx

import (
	"context"
	"io"
)

// FileReader reads stored objects
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter stores and removes objects
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is an object store addressed by slash-separated paths
type FileSystem interface {
	FileReader
	FileWriter

	// Join builds a path from its elements
	Join(elem ...string) string

	// URL returns the durable public location of path
	URL(path string) string
}
