// Package cli is the command line surface of desktasks. Without a subcommand
// it starts the terminal ui.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/td0m/desktasks/internal/config"
	"github.com/td0m/desktasks/internal/logger"
	"github.com/td0m/desktasks/internal/tui"
	"github.com/td0m/desktasks/pkg/persist"
	"github.com/td0m/desktasks/pkg/task"
)

// app is what every command runs against, set up before the command runs
type app struct {
	reader config.Reader
	now    func() time.Time

	cfg      *config.Config
	log      zerolog.Logger
	backend  persist.Backend
	store    *task.Store
	closeLog func() error
}

func newApp() *app {
	return &app{
		reader:   config.NewEnvReader(),
		now:      time.Now,
		log:      zerolog.Nop(),
		closeLog: func() error { return nil },
	}
}

// Execute runs the command line with the process arguments
func Execute(version string) error {
	a := newApp()
	defer a.close()
	return a.rootCmd(version).Execute()
}

func (a *app) rootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "desktasks",
		Short:         "Keep track of your tasks from the terminal",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(a.store, tui.Options{
				Categories: a.cfg.Categories,
				ExportDir:  a.cfg.ExportDir,
				Log:        a.log,
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("data-dir", "", "directory holding the tasks (env DESKTASKS_DATA_DIR)")
	flags.String("backend", "", "storage backend: file, sqlite or memory (env DESKTASKS_BACKEND)")
	flags.String("log-level", "", "log level (env DESKTASKS_LOG_LEVEL)")
	flags.String("log-file", "", "append logs to this file (env DESKTASKS_LOG_FILE)")

	cmd.AddCommand(a.addCmd())
	cmd.AddCommand(a.listCmd())
	cmd.AddCommand(a.toggleCmd())
	cmd.AddCommand(a.editCmd())
	cmd.AddCommand(a.deleteCmd())
	cmd.AddCommand(a.clearCmd())
	cmd.AddCommand(a.statsCmd())
	cmd.AddCommand(a.exportCmd())
	cmd.AddCommand(a.importCmd())
	return cmd
}

// open reads the config, applies flag overrides and loads the store
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := a.reader.Read()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	flags := cmd.Flags()
	for name, v := range map[string]*string{
		"data-dir":  &cfg.DataDir,
		"backend":   &cfg.Backend,
		"log-level": &cfg.LogLevel,
		"log-file":  &cfg.LogFile,
	} {
		if flags.Changed(name) {
			*v, _ = flags.GetString(name)
		}
	}
	if err := cfg.Resolve(); err != nil {
		return err
	}
	a.cfg = cfg

	// the tui owns the terminal, logs only go to the log file
	fallback := cmd.ErrOrStderr()
	if !cmd.HasParent() {
		fallback = nil
	}
	a.log, a.closeLog, err = logger.New(cfg, fallback)
	if err != nil {
		return fmt.Errorf("setting up logs: %w", err)
	}

	a.backend, err = persist.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening %s storage in %s: %w", cfg.Backend, cfg.DataDir, err)
	}
	a.log.Debug().Str("backend", cfg.Backend).Str("dir", cfg.DataDir).Msg("opened storage")

	a.store = task.NewStore(a.backend, task.WithLogger(a.log))
	a.store.Load()
	return nil
}

func (a *app) close() error {
	var err error
	if a.backend != nil {
		err = a.backend.Close()
		a.backend = nil
	}
	err = errors.Join(err, a.closeLog())
	a.closeLog = func() error { return nil }
	return err
}

// saved reports a failed write after a mutation
func (a *app) saved() error {
	if err := a.store.Err(); err != nil {
		return fmt.Errorf("changes were not saved: %w", err)
	}
	return nil
}

// resolve turns an id or id prefix given on the command line into an id
func (a *app) resolve(arg string) (task.ID, error) {
	id, err := a.store.Resolve(arg)
	if err != nil {
		return "", fmt.Errorf("%q: %w", arg, err)
	}
	return id, nil
}
