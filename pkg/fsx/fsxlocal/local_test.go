package fsxlocal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalFileSystem(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	fs := NewLocalFileSystem(root, "http://localhost:8080/files/")

	key := fs.Join("resumes", "user_1", "a.pdf")
	if err := fs.WriteFile(ctx, key, []byte("%PDF-1.4")); err != nil {
		t.Fatal(err)
	}

	data, err := fs.ReadFile(ctx, key)
	if err != nil || string(data) != "%PDF-1.4" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
	if got := fs.URL(key); got != "http://localhost:8080/files/resumes/user_1/a.pdf" {
		t.Fatalf("URL = %s", got)
	}

	if err := fs.DeleteFile(ctx, key); err != nil {
		t.Fatal(err)
	}
	if err := fs.DeleteFile(ctx, key); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "resumes", "user_1", "a.pdf")); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
}

func TestLocalFileSystemStaysInRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	fs := NewLocalFileSystem(filepath.Join(root, "inner"), "")

	if err := fs.WriteFile(ctx, "../../escape.txt", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, "inner", "escape.txt")); err != nil {
		t.Fatalf("write should be clamped into root: %v", err)
	}
	if err := fs.WriteFile(ctx, "/", []byte("x")); err == nil {
		t.Fatal("root path should be rejected")
	}
}
