package store

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
)

// Memory keeps blobs in memory. It is meant for tests and read-only previews.
type Memory struct {
	blobs map[string][]byte
	saves int
}

// NewMemory returns an empty store.
func NewMemory() *Memory { return &Memory{blobs: make(map[string][]byte)} }

// Load returns a copy of the blob.
func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("load error: key %q: %w", key, fs.ErrNotExist)
	}
	return slices.Clone(data), nil
}

// Save stores a copy of data.
func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.blobs[key] = slices.Clone(data)
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (m *Memory) Saves() int { return m.saves }

// Close does nothing.
func (m *Memory) Close() error { return nil }
