package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-Id"

// echoRequestID copies the id chosen by middleware.RequestID onto the
// response.
func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// slogFormatter renders chi request log entries as structured slog lines.
type slogFormatter struct {
	logger *slog.Logger
}

// newRequestLogger returns chi's request logger backed by logger.
func newRequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.RequestLogger(&slogFormatter{logger: logger})
}

func (f *slogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &slogEntry{logger: f.logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)}
}

type slogEntry struct {
	logger *slog.Logger
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.logger.Info("http_request",
		"status", status,
		"bytes", bytes,
		"latency_ms", float64(elapsed.Microseconds())/1000.0,
	)
}

func (e *slogEntry) Panic(v interface{}, stack []byte) {
	e.logger.Error("http_panic", "panic", fmt.Sprint(v), "stack", string(stack))
}
