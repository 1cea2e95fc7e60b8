package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File stores each blob as "<key>.json" in a folder.
//
// The folder is created on the first Save.
type File struct {
	dir string
}

// NewFile returns a store in folder dir.
func NewFile(dir string) *File { return &File{dir: dir} }

func (f *File) filename(key string) string { return filepath.Join(f.dir, key+".json") }

// Load reads a blob.
func (f *File) Load(_ context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.filename(key))
	if err != nil {
		return nil, fmt.Errorf("load error: %w", err)
	}
	return data, nil
}

// Save writes a blob to a temporary file then renames it over the previous
// one.
func (f *File) Save(_ context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("persist error: cannot create folder %q: %w", f.dir, err)
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("persist error: cannot create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("persist error: cannot write to file %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist error: cannot close file %q: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.filename(key)); err != nil {
		return fmt.Errorf("persist error: cannot replace %q: %w", f.filename(key), err)
	}
	return nil
}

// Close does nothing.
func (f *File) Close() error { return nil }
