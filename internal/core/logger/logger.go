package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

type Level slog.Level

var (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

var defaultLevel = LevelInfo

func SetDefaultLevel(level Level) {
	defaultLevel = level
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a Level.
// An empty string yields the info level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

type HandlerOption func(*tint.Options)

func WithTimeFormat(format string) HandlerOption {
	return func(opts *tint.Options) {
		opts.TimeFormat = format
	}
}

func WithNoColor(noColor bool) HandlerOption {
	return func(opts *tint.Options) {
		opts.NoColor = noColor
	}
}

func NewHandlerOptions(opts ...HandlerOption) *tint.Options {
	timeFormat := time.Stamp
	isTerminal := isatty.IsTerminal(os.Stderr.Fd())
	if !isTerminal {
		timeFormat = time.RFC3339
	}
	tintOpts := &tint.Options{
		Level:      slog.Level(defaultLevel),
		NoColor:    !isTerminal,
		TimeFormat: timeFormat,
	}
	for _, opt := range opts {
		opt(tintOpts)
	}
	return tintOpts
}

func DefaultHandler(opts ...HandlerOption) slog.Handler {
	return tint.NewHandler(os.Stderr, NewHandlerOptions(opts...))
}

type LoggerOption func(*Logger)

func WithName(name string) LoggerOption {
	return func(l *Logger) {
		l.name = name
	}
}

func WithLevel(level Level) LoggerOption {
	return func(l *Logger) {
		l.level = level
	}
}

func WithHandler(handler slog.Handler) LoggerOption {
	return func(l *Logger) {
		l.handler = handler
	}
}

// Logger is a named slog logger writing through tint
type Logger struct {
	*slog.Logger
	level   Level
	handler slog.Handler
	name    string
}

// NewLogger creates a new logger instance
func NewLogger(opts ...LoggerOption) *Logger {
	l := &Logger{
		name:  "techjobs",
		level: defaultLevel,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.handler == nil {
		l.handler = DefaultHandler(func(tintOpts *tint.Options) {
			tintOpts.Level = slog.Level(l.level)
		})
	}
	l.Logger = slog.New(l.handler).WithGroup(l.name)
	return l
}

// Discard returns a logger that drops every record. Useful in tests.
func Discard() *Logger {
	return NewLogger(WithHandler(tint.NewHandler(io.Discard, nil)))
}

// Named returns a child logger sharing the handler under a new group.
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		Logger:  l.Logger.WithGroup(name),
		level:   l.level,
		handler: l.handler,
		name:    name,
	}
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
