// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns a logger pre-tagged with the request ID injected by
// pkg/reqid, so every log line from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("batch validated", "batch_id", batch.ID)
//	// → time=... level=INFO msg="batch validated" request_id=a1b2c3d4 batch_id=42
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/webproformation/LaboutiqueOK-sub001/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		// Structured JSON for the host platform's log collector.
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the per-request *slog.Logger stored in ctx by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware, not usually by application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level with the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level with the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level with the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level with the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
