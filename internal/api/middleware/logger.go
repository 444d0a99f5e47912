package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Jeffreasy/PasswordLab/internal/api/helpers"
)

// RequestLogger is a middleware that logs the end of each request.
// Request bodies are never logged; they carry passwords.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}

		slog.Log(r.Context(), level, "http_request_completed",
			"status", status,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
			"bytes", ww.BytesWritten(),
			"req_id", GetRequestID(r.Context()),
			"ip", helpers.GetRealIP(r).String(),
		)
	})
}
