package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/logger"
)

// responseWriter records status and bytes written for the access log.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// correlationID returns the inbound X-Correlation-ID or mints one, so every
// access log line and downstream event is traceable to a single request.
func correlationID(r *http.Request) string {
	if id := r.Header.Get("X-Correlation-ID"); id != "" {
		return id
	}
	return uuid.New().String()
}

// RequestLogging writes one access-log line per request and propagates the
// correlation ID through context and the response header.
func RequestLogging(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := correlationID(r)
			ctx := logger.WithCorrelationID(r.Context(), cid)
			r = r.WithContext(ctx)
			w.Header().Set("X-Correlation-ID", cid)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(wrapped, r)

			l.InfoContext(ctx, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", time.Since(start)),
				slog.Int("bytes", wrapped.bytes),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("correlation_id", cid),
			)
		})
	}
}

// RequestLogger stores a request-scoped logger enriched with correlation_id,
// session_id, trace_id and span_id in context; handlers retrieve it with
// logger.FromContext. Mount after RequestLogging and Auth so both IDs are
// available.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if sessionID := SessionIDFromContext(ctx); sessionID != "" {
				ctx = logger.WithSessionID(ctx, sessionID)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
