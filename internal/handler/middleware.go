package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/metrics"
	"github.com/topnotes/catalog-api/internal/service"
)

// adminCtxKey carries the authenticated admin through the request context.
type adminCtxKey struct{}

// adminFromContext returns the authenticated admin, if any.
func adminFromContext(ctx context.Context) (*domain.Admin, bool) {
	admin, ok := ctx.Value(adminCtxKey{}).(*domain.Admin)
	return admin, ok
}

// bearerToken extracts the token from an Authorization header.
// The "Bearer" and "Token" schemes are accepted, as is a bare value.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	for _, scheme := range []string{"Bearer ", "Token "} {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return header
}

// requireStaff authenticates the bearer token and gates on the staff
// flag: unknown token 401, authenticated non-staff 403.
func requireStaff(authService AuthService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeDetail(w, http.StatusUnauthorized, "authentication credentials were not provided")
				return
			}

			admin, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}

			if !admin.IsStaff {
				writeServiceError(w, logger, service.ErrNotStaff)
				return
			}

			ctx := context.WithValue(r.Context(), adminCtxKey{}, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestMetrics records request counts and latency per chi route.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(r.Method, route, ww.Status(), time.Since(start))
	})
}

// requestLogger emits one structured log line per request.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("remote", r.RemoteAddr).
				Msg("request")
		})
	}
}
