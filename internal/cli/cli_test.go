package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/td0m/desktasks/pkg/persist"
	"github.com/td0m/desktasks/pkg/task"
)

var today = time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)

// run executes one command line against the data in dir, like a separate process would
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	a.now = func() time.Time { return today }
	cmd := a.rootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--data-dir", dir, "--log-level", "error"))
	err := cmd.Execute()
	if cerr := a.close(); cerr != nil {
		t.Fatal(cerr)
	}
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func list(t *testing.T, dir string, args ...string) []task.Task {
	t.Helper()
	out := mustRun(t, dir, append([]string{"list", "--json"}, args...)...)
	var ts []task.Task
	if err := json.Unmarshal([]byte(out), &ts); err != nil {
		t.Fatal(err)
	}
	return ts
}

// addedID returns the short id printed by add
func addedID(out string) string {
	return strings.Fields(out)[1]
}

func TestAdd(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	out := mustRun(t, dir, "add", "Buy", "milk", "-p", "high", "-c", "Shopping", "-d", "tomorrow", "-m", "oat")
	is.True(strings.HasPrefix(out, "added "))
	is.True(strings.HasSuffix(out, " Buy milk\n"))

	ts := list(t, dir)
	is.Equal(len(ts), 1)
	is.Equal(ts[0].Title, "Buy milk")
	is.Equal(ts[0].Priority, task.High)
	is.Equal(ts[0].Category, "Shopping")
	is.Equal(ts[0].DueDate, "2024-02-02")
	is.Equal(ts[0].Description, "oat")
	is.True(strings.HasPrefix(string(ts[0].ID), addedID(out)))

	// defaults
	mustRun(t, dir, "add", "Write report")
	ts = list(t, dir)
	is.Equal(len(ts), 2)
	is.Equal(ts[0].Title, "Write report")
	is.Equal(ts[0].Priority, task.Medium)
	is.Equal(ts[0].Category, task.DefaultCategories[0])
}

func TestAdd_Invalid(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		{"add", "   "},
		{"add", "x", "-p", "urgent"},
		{"add", "x", "-d", "someday"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			is := is.New(t)
			_, err := run(t, dir, args...)
			is.True(err != nil)
		})
	}
	is.New(t).Equal(len(list(t, dir)), 0)
}

func TestList(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	out := mustRun(t, dir, "list")
	is.Equal(out, "No tasks yet\n")

	mustRun(t, dir, "add", "Buy milk", "-p", "high", "-c", "Shopping")
	mustRun(t, dir, "add", "Write report", "-p", "low", "-c", "Work")
	done := addedID(mustRun(t, dir, "add", "Go running", "-c", "Health"))
	mustRun(t, dir, "toggle", done)

	is.Equal(len(list(t, dir)), 3)
	is.Equal(len(list(t, dir, "--status", "pending")), 2)
	is.Equal(len(list(t, dir, "--status", "completed")), 1)
	is.Equal(len(list(t, dir, "-s", "MILK")), 1)
	is.Equal(len(list(t, dir, "-c", "Work")), 1)
	is.Equal(len(list(t, dir, "-p", "l")), 1)

	out = mustRun(t, dir, "list", "-c", "Nope")
	is.Equal(out, "No tasks match your filters\n")

	out = mustRun(t, dir, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	is.Equal(len(lines), 3)
	is.True(strings.HasPrefix(lines[0], "[x]"))
	is.True(strings.Contains(lines[0], "Go running"))
	is.True(strings.HasPrefix(lines[2], "[ ]"))
	is.True(strings.Contains(lines[2], "(high, Shopping)"))

	_, err := run(t, dir, "list", "--status", "later")
	is.True(err != nil)
}

func TestToggle(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	id := addedID(mustRun(t, dir, "add", "Buy milk"))

	out := mustRun(t, dir, "toggle", id)
	is.True(strings.HasPrefix(out, "completed "))
	is.True(list(t, dir)[0].Completed)

	out = mustRun(t, dir, "toggle", id)
	is.True(strings.HasPrefix(out, "reopened "))
	is.True(!list(t, dir)[0].Completed)

	_, err := run(t, dir, "toggle", "does-not-exist")
	is.True(err != nil)
}

func TestEdit(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	id := addedID(mustRun(t, dir, "add", "Buy milk", "-d", "2024-03-01"))
	before := list(t, dir)[0]

	mustRun(t, dir, "edit", id, "-t", "Buy oat milk", "-p", "high", "-c", "Shopping")
	after := list(t, dir)[0]
	is.Equal(after.Title, "Buy oat milk")
	is.Equal(after.Priority, task.High)
	is.Equal(after.Category, "Shopping")
	is.Equal(after.DueDate, "2024-03-01")
	is.Equal(after.CreatedAt, before.CreatedAt)
	is.True(!after.UpdatedAt.Before(before.UpdatedAt))

	mustRun(t, dir, "edit", id, "--due", "")
	is.Equal(list(t, dir)[0].DueDate, "")

	_, err := run(t, dir, "edit", id)
	is.Equal(err, errNoChanges)

	_, err = run(t, dir, "edit", id, "-t", " ")
	is.Equal(err, task.ErrEmptyTitle)
}

func TestDelete(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	a := addedID(mustRun(t, dir, "add", "a"))
	b := addedID(mustRun(t, dir, "add", "b"))
	mustRun(t, dir, "add", "c")

	// a bad id aborts the whole command
	_, err := run(t, dir, "delete", a, "nope")
	is.True(err != nil)
	is.Equal(len(list(t, dir)), 3)

	out := mustRun(t, dir, "rm", a, b)
	is.Equal(strings.Count(out, "deleted"), 2)
	ts := list(t, dir)
	is.Equal(len(ts), 1)
	is.Equal(ts[0].Title, "c")
}

func TestClearAndStats(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	mustRun(t, dir, "add", "a", "-p", "high")
	mustRun(t, dir, "add", "b", "-p", "low")
	c := addedID(mustRun(t, dir, "add", "c"))
	mustRun(t, dir, "toggle", c)

	var s task.Stats
	is.NoErr(json.Unmarshal([]byte(mustRun(t, dir, "stats", "--json")), &s))
	is.Equal(s, task.Stats{Total: 3, Completed: 1, Pending: 2, High: 1, Low: 1})

	out := mustRun(t, dir, "stats")
	is.True(strings.Contains(out, "Completed:  1 (33%)"))

	is.Equal(mustRun(t, dir, "clear"), "cleared 1 completed tasks\n")
	is.Equal(mustRun(t, dir, "clear"), "cleared 0 completed tasks\n")
	is.Equal(len(list(t, dir)), 2)
}

func TestExportImport(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	exports := t.TempDir()
	mustRun(t, dir, "add", "a")
	mustRun(t, dir, "add", "b")

	out := mustRun(t, dir, "export", "-o", exports)
	path := filepath.Join(exports, "tasks_2024-02-01.json")
	is.Equal(out, "exported 2 tasks to "+path+"\n")

	out = mustRun(t, dir, "export", "-o", "-")
	is.True(strings.HasPrefix(out, "[\n  {\n"))

	out = mustRun(t, dir, "import", path)
	is.Equal(out, "Ready to import 2 tasks. Feature coming soon!\n")
	// the stub never touches the store
	is.Equal(len(list(t, dir)), 2)

	bad := filepath.Join(exports, "bad.json")
	is.NoErr(os.WriteFile(bad, []byte(`{"tasks":[]}`), 0o600))
	out, err := run(t, dir, "import", bad)
	is.True(err != nil)
	is.Equal(out, "Error importing file. Please check the file format.\n")
}

func TestBackends(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	mustRun(t, dir, "add", "in sqlite", "--backend", "sqlite")

	// each backend keeps its own data
	is.Equal(len(list(t, dir, "--backend", "sqlite")), 1)
	is.Equal(len(list(t, dir, "--backend", "file")), 0)
	_, err := os.Stat(filepath.Join(dir, "tasks.db"))
	is.NoErr(err)

	_, err = run(t, dir, "list", "--backend", "redis")
	is.True(err != nil)
}

func TestEnvConfig(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	t.Setenv("DESKTASKS_CATEGORIES", "Home,Garden")
	mustRun(t, dir, "add", "Mow the lawn")
	is.Equal(list(t, dir)[0].Category, "Home")
}

func TestEnvConfig_BlankCategories(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	t.Setenv("DESKTASKS_CATEGORIES", ",")
	mustRun(t, dir, "add", "Buy milk")
	is.Equal(list(t, dir)[0].Category, task.DefaultCategories[0])
}

func TestStoredLayout(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	mustRun(t, dir, "add", "Buy milk")

	b, err := persist.InFiles(dir)
	is.NoErr(err)
	bs, err := b.Get(task.StorageKey)
	is.NoErr(err)
	is.True(strings.Contains(string(bs), `"title":"Buy milk"`))
	is.True(strings.Contains(string(bs), `"createdAt":"2`))
}
