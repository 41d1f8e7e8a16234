package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rmarques/wishflix/internal/models"
	"github.com/sirupsen/logrus"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLog logs each request and persists a request log document alongside
// the movies it touches.
func RequestLog(db *models.Database, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			// Route params are only populated once the router has run.
			var movieID string
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				movieID = rctx.URLParam("id")
			}

			entry := &models.RequestLog{
				RequestID:  requestID,
				Method:     r.Method,
				Path:       r.URL.Path,
				StatusCode: wrapped.statusCode,
				DurationMs: time.Since(start).Milliseconds(),
				MovieID:    movieID,
				Timestamp:  start,
			}
			if err := db.CreateRequestLog(entry); err != nil {
				logger.WithError(err).Warn("Failed to persist request log")
			}

			logger.WithFields(logrus.Fields{
				"request_id":  requestID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      wrapped.statusCode,
				"duration_ms": entry.DurationMs,
				"remote_addr": r.RemoteAddr,
			}).Info("HTTP request")
		})
	}
}
