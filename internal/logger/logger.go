package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/td0m/desktasks/internal/config"
)

// New builds the application logger from cfg.
// With a log file configured, logs are appended to it as json; otherwise they
// go to fallback in a human readable form. A nil fallback discards them.
// The returned close func must be called once logging is done.
func New(cfg *config.Config, fallback io.Writer) (zerolog.Logger, func() error, error) {
	nop := func() error { return nil }

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nop, err
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimestampFieldName = "timestamp"

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), nop, err
		}
		l := zerolog.New(f).
			Level(level).
			With().
			Timestamp().
			Int("pid", os.Getpid()).
			Logger()
		return l, f.Close, nil
	}

	if fallback == nil {
		return zerolog.Nop(), nop, nil
	}
	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.TimeFormat = time.DateTime
	consoleWriter.Out = fallback
	l := zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Logger()
	return l, nop, nil
}
