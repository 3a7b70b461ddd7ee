// Package slogger provides the structured logging facade for the capsule
// CLI. Log lines go to standard error so they never mix with command
// output; the default level is info, and the create workflow logs its
// diagnostics at debug.
package slogger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Fields carries ad-hoc structured values attached to a single log line.
type Fields map[string]any

// Config controls handler construction.
type Config struct {
	// Level is one of debug, info, warn, error (case-insensitive).
	Level string
	// Format is json or text.
	Format string
}

var (
	mu     sync.Mutex   //nolint:gochecknoglobals // Guards the package logger.
	logger *slog.Logger //nolint:gochecknoglobals // Package logger, lazily built.
)

// Configure replaces the package logger according to cfg, writing to
// standard error. Unknown levels fall back to info, unknown formats to
// json.
func Configure(cfg Config) {
	ConfigureWithWriter(cfg, os.Stderr)
}

// ConfigureWithWriter is Configure with an explicit destination. Test hook.
func ConfigureWithWriter(cfg Config, w io.Writer) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return logger
}

// Debug logs a debug message with context.
func Debug(ctx context.Context, msg string, fields Fields) {
	log(ctx, slog.LevelDebug, msg, fields)
}

// Info logs an info message with context.
func Info(ctx context.Context, msg string, fields Fields) {
	log(ctx, slog.LevelInfo, msg, fields)
}

// Warn logs a warning message with context.
func Warn(ctx context.Context, msg string, fields Fields) {
	log(ctx, slog.LevelWarn, msg, fields)
}

// Error logs an error message with context.
func Error(ctx context.Context, msg string, fields Fields) {
	log(ctx, slog.LevelError, msg, fields)
}

// ErrorWithError logs an error message with the error attached as a field.
func ErrorWithError(ctx context.Context, err error, msg string, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	fields["error"] = err.Error()
	log(ctx, slog.LevelError, msg, fields)
}

// Field creates a single-entry Fields map.
func Field(key string, value any) Fields {
	return Fields{key: value}
}

func log(ctx context.Context, level slog.Level, msg string, fields Fields) {
	args := make([]any, 0, 2*(len(fields)+1))
	if id := RequestIDFrom(ctx); id != "" {
		args = append(args, slog.String(requestIDField, id))
	}
	for key, value := range fields {
		args = append(args, slog.Any(key, value))
	}
	get().Log(ctx, level, msg, args...)
}
