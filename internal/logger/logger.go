package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the process logger. It runs before configuration is loaded, so
// it reads APP_ENV and LOG_LEVEL directly.
func New() zerolog.Logger {
	var out io.Writer = os.Stdout
	if os.Getenv("APP_ENV") == "" || os.Getenv("APP_ENV") == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}
	return WithLevel(out, os.Getenv("LOG_LEVEL"))
}

// WithLevel builds a logger writing to out at the named level; unknown or
// empty levels fall back to info.
func WithLevel(out io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(lvl)
}
