// Package logging provides ORACLE's structured logging setup: zerolog
// everywhere, a pretty console writer for interactive use, and a switch
// to raw JSON lines for production (ORACLE_LOG_JSON).
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls how New builds the root logger.
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // human-readable console output; false => structured JSON
}

// New creates ORACLE's root structured logger.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()
}

// FromEnv builds a Config from the agent's configured level and the
// ORACLE_LOG_JSON environment variable: set and non-empty disables
// pretty-printing in favor of structured JSON lines.
func FromEnv(level string) Config {
	pretty := os.Getenv("ORACLE_LOG_JSON") == ""
	return Config{Level: level, Pretty: pretty}
}

// SetGlobalLogger sets the package-level zerolog logger used by anything
// that reaches for the default log.Logger instead of an injected one.
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}
