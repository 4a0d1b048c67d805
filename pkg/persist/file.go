package persist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// File stores every key in its own json file inside a directory
type File struct {
	dir string
}

var _ Backend = &File{}

// InFiles creates the directory if needed
func InFiles(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (f File) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", ErrInvalidKey
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// Get reads the whole value stored under key
func (f File) Get(key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return bs, err
}

// Set replaces the value stored under key
// it writes to a temporary file first so a failed write never truncates the old value
func (f File) Set(key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, "."+key+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (f File) Close() error {
	return nil
}
