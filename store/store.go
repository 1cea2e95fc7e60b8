// Package store persists named blobs, one whole value per key.
//
// Writes replace the blob entirely: a reader sees either the previous blob or
// the new one, never a mix. A key that was never saved fails Load with an error
// wrapping fs.ErrNotExist.
package store

import (
	"context"
	"fmt"
	"regexp"
)

// Store is a key-value blob store.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Kinds of store accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// keyRegex restricts keys to names that are safe as file names.
var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidateKey checks that key can be stored by every kind of store.
func ValidateKey(key string) error {
	if !keyRegex.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q: must only contain letters, digits, '_', '.' and '-'", key)
	}
	return nil
}

// Open opens a store of the given kind. path is a folder for KindFile and a
// database file for KindSQLite.
func Open(ctx context.Context, kind, path string) (Store, error) {
	switch kind {
	case KindFile, "":
		return NewFile(path), nil
	case KindSQLite:
		return OpenSQLite(ctx, path)
	}
	return nil, fmt.Errorf("unknown store kind %q", kind)
}
