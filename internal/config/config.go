package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/td0m/desktasks/pkg/persist"
	"github.com/td0m/desktasks/pkg/task"
)

type Config struct {
	// DataDir holds the task storage, defaults to <user config dir>/desktasks
	DataDir string `env:"DESKTASKS_DATA_DIR"`
	Backend string `env:"DESKTASKS_BACKEND" env-default:"file"`

	LogLevel string `env:"DESKTASKS_LOG_LEVEL" env-default:"info"`
	// LogFile is where logs go; empty means stderr for commands and nowhere for the TUI
	LogFile string `env:"DESKTASKS_LOG_FILE"`

	Categories []string `env:"DESKTASKS_CATEGORIES" env-default:"Personal,Work,Health,Learning,Shopping,Others" env-separator:","`
	// ExportDir is where exports are written, defaults to the working directory
	ExportDir string `env:"DESKTASKS_EXPORT_DIR"`
}

// Resolve fills in defaults that depend on the machine and validates the rest
func (c *Config) Resolve() error {
	if c.DataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("no data dir configured: %w", err)
		}
		c.DataDir = filepath.Join(dir, "desktasks")
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	c.Categories = categories(c.Categories)
	for _, k := range persist.Kinds {
		if c.Backend == k {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", persist.ErrUnknownBackend, c.Backend)
}

// categories trims cs and drops blank and repeated entries,
// falling back to the default set when nothing is left
func categories(cs []string) []string {
	out := make([]string, 0, len(cs))
	seen := map[string]bool{}
	for _, c := range cs {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return append([]string{}, task.DefaultCategories...)
	}
	return out
}
