// Package logger configures the application-wide zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a logger tagged with the service name. pretty switches
// to the console writer for local development.
func New(serviceName, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(lvl).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
