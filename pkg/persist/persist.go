package persist

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	ErrNotFound       = errors.New("key not found")
	ErrInvalidKey     = errors.New("invalid key")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Backend is a durable key-value store; values are written and read whole
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Kinds lists the names accepted by Open
var Kinds = []string{KindFile, KindSQLite, KindMemory}

// Open creates the backend called kind, keeping its data under dir
func Open(kind, dir string) (Backend, error) {
	switch kind {
	case KindFile:
		return InFiles(dir)
	case KindSQLite:
		return InSQLite(filepath.Join(dir, "tasks.db"))
	case KindMemory:
		return InMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}
