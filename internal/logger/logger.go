// Package logger owns the kernel's process-wide structured logger.
//
// Adapted from the teacher codebase's internal/logger: a single
// zerolog.Logger is configured once via Initialize, and per-component
// child loggers attach a "component" field so log aggregation can filter
// by which part of the kernel (loader, registry, planner, executor, cli)
// emitted a line.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log is the global logger instance, valid after Initialize has run.
var Log zerolog.Logger

// Initialize sets up the global logger. level is a zerolog level name
// ("debug", "info", "warn", "error"); pretty selects human-readable
// console output (for interactive terminals) over JSON (for redirected
// output and log aggregation).
func Initialize(level string, pretty bool) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	}

	Log = log.With().
		Str("service", "skanujkod-kernel").
		Logger()
}

func init() {
	// A usable default before Initialize runs, so package-level code
	// (and tests) that logs before CLI startup doesn't panic on a zero
	// zerolog.Logger.
	Log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// GetLogger returns the global logger instance.
func GetLogger() *zerolog.Logger {
	return &Log
}

// Loader returns a logger scoped to the plugin loader.
func Loader() *zerolog.Logger {
	l := Log.With().Str("component", "loader").Logger()
	return &l
}

// Registry returns a logger scoped to the registry.
func Registry() *zerolog.Logger {
	l := Log.With().Str("component", "registry").Logger()
	return &l
}

// Planner returns a logger scoped to the planner.
func Planner() *zerolog.Logger {
	l := Log.With().Str("component", "planner").Logger()
	return &l
}

// Executor returns a logger scoped to the executor.
func Executor() *zerolog.Logger {
	l := Log.With().Str("component", "executor").Logger()
	return &l
}

// CLI returns a logger scoped to the command-line front-end.
func CLI() *zerolog.Logger {
	l := Log.With().Str("component", "cli").Logger()
	return &l
}
