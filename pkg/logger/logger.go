// Package logger holds the process-wide zerolog logger.
//
// Call Init once from main; packages that cannot receive a logger through
// their constructor may call Get. Component returns a child logger tagged
// with the subsystem name.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how Init builds the logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Unknown values mean info.
	Level string
	// Pretty switches to the coloured console writer instead of JSON.
	Pretty bool
	// Service is attached to every entry as "service" when set.
	Service string
	// Env is attached to every entry as "env" when set.
	Env string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu       sync.RWMutex
	instance *zerolog.Logger
)

// Init builds the logger. Only the first call has an effect until Reset.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return *instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Env != "" {
		ctx = ctx.Str("env", opts.Env)
	}

	l := ctx.Logger()
	instance = &l
	return l
}

// Get returns the initialised logger. It panics before Init.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		panic("logger: Get() called before Init()")
	}
	return *instance
}

// Component returns a child of the initialised logger tagged with name.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset discards the logger so the next Init rebuilds it. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}

// ParseLevel maps a level name to a zerolog.Level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
