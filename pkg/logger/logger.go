// Package logger configures the process-wide slog logger and provides
// attribute helpers shared by every package.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/fx"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
	fx.Provide(NewHTTPLogger),
)

// NewLogger creates the application logger.
// LOG_LEVEL selects the level (debug, info, warn, error; default info).
// GO_ENV=production switches to the JSON handler.
func NewLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Scope tags log records with the component that emitted them.
func Scope(name string) slog.Attr {
	return slog.String("scope", name)
}

// Error wraps an error as a log attribute under the "error" key.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// HTTPLogger writes one access-log line per request.
// When HTTP_LOG_PATH is unset the lines are discarded.
type HTTPLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewHTTPLogger opens the access log named by HTTP_LOG_PATH.
func NewHTTPLogger(lc fx.Lifecycle, log *slog.Logger) *HTTPLogger {
	path := os.Getenv("HTTP_LOG_PATH")
	if path == "" {
		return &HTTPLogger{out: io.Discard}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Warn("http access log disabled", slog.String("path", path), Error(err))
		return &HTTPLogger{out: io.Discard}
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return f.Close()
		},
	})

	return &HTTPLogger{out: f}
}

// NewHTTPLoggerWriter builds an HTTPLogger over an arbitrary writer.
func NewHTTPLoggerWriter(w io.Writer) *HTTPLogger {
	return &HTTPLogger{out: w}
}

// LogRequest appends a combined-style access log line.
func (l *HTTPLogger) LogRequest(ip, method, uri string, status int, latency time.Duration, userAgent, requestID string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, "%s %s %s %s %d %s %q %s\n",
		time.Now().UTC().Format(time.RFC3339),
		ip,
		method,
		uri,
		status,
		latency.Round(time.Microsecond),
		userAgent,
		requestID,
	)
}
