package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"vet-clinic-scheduling/internal/platform/logger"
)

// AccessLog registra una línea por request. /health va a debug.
// Debe montarse antes de AuthContext para poder loguear el usuario.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			user := &requestUser{}

			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestUserKey, user)))

			fields := map[string]any{
				"request_id":  chimw.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if user.set {
				fields["user_id"] = user.claims.UserID
				if user.claims.ClinicID != "" {
					fields["clinic_id"] = user.claims.ClinicID
				}
				if user.claims.Role != "" {
					fields["role"] = user.claims.Role
				}
			}

			switch {
			case r.URL.Path == "/health":
				log.Debug("http request", fields)
			case ww.Status() >= 500:
				log.Error("http request", fields)
			default:
				log.Info("http request", fields)
			}
		})
	}
}
