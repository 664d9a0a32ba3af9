package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/vmtecnologia/usersvc/internal/logging"
)

const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// Recover turns a panic in a later step into a 500 response.
func Recover(logger logging.Logger) Step {
	return Step{Name: "recover", Wrap: func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error(r.Context(), "panic serving request", "panic", rec, "path", r.URL.Path)
					writeError(w, r, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}}
}

// RequestID propagates an incoming X-Request-ID or assigns a new one, and
// adds it to the log fields of the request context.
func RequestID() Step {
	return Step{Name: "request-id", Wrap: func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			ctx := logging.WithFields(r.Context(), "request_id", id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}}
}

// AccessLog writes one line per request once the response is done.
func AccessLog(logger logging.Logger) Step {
	return Step{Name: "access-log", Wrap: func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info(r.Context(), "request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}}
}
