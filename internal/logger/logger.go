package logger

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// serviceName is stamped on every log line so the loader, the scheduler,
// and the API share one filterable field in aggregated logs.
const serviceName = "taxi-dashboard"

var (
	base        zerolog.Logger
	initialized bool
)

// Init configures the global JSON logger. Calling it again re-reads the
// environment, which tests use to switch levels.
//
// Environment variables (optional):
//   - LOG_LEVEL: trace|debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false)
func Init() {
	level := parseLevel(getenv("LOG_LEVEL", "info"))
	pretty, _ := strconv.ParseBool(getenv("LOG_PRETTY", "false"))

	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	base = zerolog.New(w).With().
		Timestamp().
		Str("service", serviceName).
		Logger().
		Level(level)
	initialized = true
}

// L returns the global logger, initializing it from the environment on
// first use. Call Init() once on startup to make the setup explicit.
func L() *zerolog.Logger {
	if !initialized {
		Init()
	}
	return &base
}

// Component returns a child logger tagged with a component name
// (for example "soda", "loader", "scheduler").
func Component(name string) zerolog.Logger {
	return L().With().Str("component", name).Logger()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
