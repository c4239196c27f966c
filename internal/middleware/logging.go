// Package middleware wraps console actions with cross-cutting behavior.
package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mmynk/roster/internal/metrics"
	"github.com/mmynk/roster/internal/service"
	"github.com/mmynk/roster/internal/storage"
)

// Action is one user-facing operation: a menu entry or a subcommand.
type Action func(ctx context.Context) error

// Interceptor decorates a named Action.
type Interceptor func(name string, next Action) Action

// Chain composes interceptors; the first one is outermost.
func Chain(interceptors ...Interceptor) Interceptor {
	return func(name string, next Action) Action {
		for i := len(interceptors) - 1; i >= 0; i-- {
			next = interceptors[i](name, next)
		}
		return next
	}
}

// Outcome classifies an action error for logs and metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return "aborted"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrConstraintViolation):
		return "conflict"
	case errors.Is(err, service.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

// LoggingInterceptor logs every action with its duration and outcome.
// Recoverable failures log at warn, everything else at error.
func LoggingInterceptor() Interceptor {
	return func(name string, next Action) Action {
		return func(ctx context.Context) error {
			start := time.Now()

			err := next(ctx)

			duration := time.Since(start).Milliseconds()
			outcome := Outcome(err)
			switch outcome {
			case "ok":
				slog.Info("Action ok",
					"action", name,
					"duration_ms", duration,
				)
			case "error":
				slog.Error("Action error",
					"action", name,
					"error", err,
					"duration_ms", duration,
				)
			default:
				slog.Warn("Action error",
					"action", name,
					"outcome", outcome,
					"error", err,
					"duration_ms", duration,
				)
			}

			return err
		}
	}
}

// MetricsInterceptor counts and times every action.
func MetricsInterceptor(m *metrics.Metrics) Interceptor {
	return func(name string, next Action) Action {
		return func(ctx context.Context) error {
			start := time.Now()
			err := next(ctx)
			m.OperationSeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())
			m.Operations.WithLabelValues(name, Outcome(err)).Inc()
			return err
		}
	}
}
