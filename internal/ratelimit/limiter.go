// Package ratelimit throttles failed login attempts per client.
//
// Attempts are counted in a cache under a per-client key with a sliding
// TTL: every failure refreshes the window. When the counter store is
// unreachable the limiter fails open by default, so a cache outage
// degrades protection rather than locking every client out.
package ratelimit

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/config"
	"github.com/topnotes/catalog-api/internal/repository"
)

// attemptKeyPrefix namespaces login attempt counters in the cache.
const attemptKeyPrefix = "login_attempts:"

// Limiter tracks failed login attempts per client key.
type Limiter struct {
	cache       repository.Cache
	maxAttempts int64
	window      time.Duration
	failClosed  bool
	logger      zerolog.Logger
}

// NewLimiter creates a login attempt limiter.
func NewLimiter(cache repository.Cache, cfg config.RateLimitConfig, logger zerolog.Logger) *Limiter {
	return &Limiter{
		cache:       cache,
		maxAttempts: cfg.MaxAttempts,
		window:      cfg.Window,
		failClosed:  cfg.FailClosed,
		logger:      logger.With().Str("component", "ratelimit").Logger(),
	}
}

// Blocked reports whether the client has exhausted its attempts.
func (l *Limiter) Blocked(ctx context.Context, clientKey string) bool {
	value, err := l.cache.Get(ctx, attemptKeyPrefix+clientKey)
	if err != nil {
		if errors.Is(err, repository.ErrCacheMiss) {
			return false
		}
		l.logger.Warn().Err(err).Str("client", clientKey).Msg("attempt counter unavailable")
		return l.failClosed
	}

	attempts := parseCount(value)
	return attempts >= l.maxAttempts
}

// RecordFailure counts a failed attempt and refreshes the window.
func (l *Limiter) RecordFailure(ctx context.Context, clientKey string) {
	key := attemptKeyPrefix + clientKey

	attempts, err := l.cache.Increment(ctx, key, 1)
	if err != nil {
		l.logger.Warn().Err(err).Str("client", clientKey).Msg("failed to count login attempt")
		return
	}

	if err := l.cache.Expire(ctx, key, l.window); err != nil {
		l.logger.Warn().Err(err).Str("client", clientKey).Msg("failed to set attempt window")
	}

	if attempts >= l.maxAttempts {
		l.logger.Warn().
			Str("client", clientKey).
			Int64("attempts", attempts).
			Msg("client blocked after repeated login failures")
	}
}

// Reset clears the attempt counter after a successful login.
func (l *Limiter) Reset(ctx context.Context, clientKey string) {
	if err := l.cache.Delete(ctx, attemptKeyPrefix+clientKey); err != nil {
		l.logger.Warn().Err(err).Str("client", clientKey).Msg("failed to reset attempt counter")
	}
}

// parseCount decodes a cached counter value. Malformed values count as zero.
func parseCount(value []byte) int64 {
	var n int64
	for _, c := range value {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int64(c-'0')
	}
	return n
}

// ClientKey derives the rate limit key for a request. The first entry
// of X-Forwarded-For wins when present, otherwise the remote address.
func ClientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			return forwarded[:idx]
		}
		return forwarded
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
