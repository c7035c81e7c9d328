package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
	mu            sync.RWMutex
	level         = new(slog.LevelVar)
)

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func Init(verbose bool) {
	once.Do(func() {
		InitWithWriter(os.Stderr, verbose)
	})
}

// InitWithWriter replaces the default logger, used by tests and by the TUI
// which cannot share stderr with the alt screen.
func InitWithWriter(w io.Writer, verbose bool) {
	level.Set(levelFor(verbose))

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	mu.Lock()
	defaultLogger = slog.New(handler)
	mu.Unlock()
}

func SetVerbose(verbose bool) {
	level.Set(levelFor(verbose))
}

func get() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l == nil {
		Init(false)
		mu.RLock()
		l = defaultLogger
		mu.RUnlock()
	}
	return l
}

// Component returns a logger tagged with the subsystem that emits the line,
// e.g. Component("presence").
func Component(name string) *slog.Logger {
	return get().With("component", name)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

func With(args ...any) *slog.Logger {
	return get().With(args...)
}
