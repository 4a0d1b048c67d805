// Package transfer moves whole task collections in and out of files.
//
// Import is deliberately incomplete: a file is only inspected and the number
// of tasks it holds is reported, nothing is merged into the store.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/td0m/desktasks/pkg/task"
)

var (
	ErrMalformed = errors.New("file is not valid json")
	ErrNotArray  = errors.New("file does not contain a list of tasks")
)

// FileName is the export file name for the day of now (UTC), tasks_YYYY-MM-DD.json
func FileName(now time.Time) string {
	return "tasks_" + now.UTC().Format("2006-01-02") + ".json"
}

// Export writes every task as indented json
func Export(w io.Writer, ts []task.Task) error {
	if ts == nil {
		ts = []task.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ts)
}

// ExportFile writes an export into dir and returns its path
func ExportFile(dir string, ts []task.Task, now time.Time) (string, error) {
	path := filepath.Join(dir, FileName(now))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", err
	}
	if err := Export(f, ts); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// Inspect parses an import and returns how many tasks it holds
func Inspect(r io.Reader) (int, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	var v interface{}
	if err := json.Unmarshal(bytes.TrimSpace(bs), &v); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	items, ok := v.([]interface{})
	if !ok {
		return 0, ErrNotArray
	}
	return len(items), nil
}

// InspectFile is Inspect for a path
func InspectFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return Inspect(f)
}

// ImportMessage is what the user is told after trying to import
func ImportMessage(n int, err error) string {
	if err != nil {
		return "Error importing file. Please check the file format."
	}
	return fmt.Sprintf("Ready to import %d tasks. Feature coming soon!", n)
}
