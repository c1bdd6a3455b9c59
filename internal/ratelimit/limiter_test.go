package ratelimit

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topnotes/catalog-api/internal/cache/memory"
	"github.com/topnotes/catalog-api/internal/config"
	"github.com/topnotes/catalog-api/internal/repository"
)

func newTestLimiter(t *testing.T, failClosed bool) (*Limiter, *memory.Cache) {
	t.Helper()
	cache := memory.NewCache()
	t.Cleanup(cache.Stop)

	cfg := config.RateLimitConfig{
		MaxAttempts: 5,
		Window:      900 * time.Second,
		FailClosed:  failClosed,
	}
	return NewLimiter(cache, cfg, zerolog.Nop()), cache
}

func TestLimiter_AllowsUnderThreshold(t *testing.T) {
	limiter, _ := newTestLimiter(t, false)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		assert.False(t, limiter.Blocked(ctx, "1.2.3.4"))
		limiter.RecordFailure(ctx, "1.2.3.4")
	}

	assert.False(t, limiter.Blocked(ctx, "1.2.3.4"), "four failures should not block")
}

func TestLimiter_BlocksAtThreshold(t *testing.T) {
	limiter, _ := newTestLimiter(t, false)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		limiter.RecordFailure(ctx, "1.2.3.4")
	}

	assert.True(t, limiter.Blocked(ctx, "1.2.3.4"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, false)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		limiter.RecordFailure(ctx, "1.2.3.4")
	}

	assert.True(t, limiter.Blocked(ctx, "1.2.3.4"))
	assert.False(t, limiter.Blocked(ctx, "5.6.7.8"))
}

func TestLimiter_ResetClearsCounter(t *testing.T) {
	limiter, _ := newTestLimiter(t, false)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		limiter.RecordFailure(ctx, "1.2.3.4")
	}
	require.True(t, limiter.Blocked(ctx, "1.2.3.4"))

	limiter.Reset(ctx, "1.2.3.4")
	assert.False(t, limiter.Blocked(ctx, "1.2.3.4"))
}

func TestLimiter_WindowExpires(t *testing.T) {
	cache := memory.NewCache()
	t.Cleanup(cache.Stop)

	cfg := config.RateLimitConfig{
		MaxAttempts: 2,
		Window:      20 * time.Millisecond,
	}
	limiter := NewLimiter(cache, cfg, zerolog.Nop())
	ctx := context.Background()

	limiter.RecordFailure(ctx, "1.2.3.4")
	limiter.RecordFailure(ctx, "1.2.3.4")
	require.True(t, limiter.Blocked(ctx, "1.2.3.4"))

	time.Sleep(40 * time.Millisecond)

	assert.False(t, limiter.Blocked(ctx, "1.2.3.4"), "counter should expire with the window")
}

// failingCache simulates an unreachable counter store.
type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (failingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("connection refused")
}
func (failingCache) Delete(ctx context.Context, key string) error {
	return errors.New("connection refused")
}
func (failingCache) Exists(ctx context.Context, key string) (bool, error) {
	return false, errors.New("connection refused")
}
func (failingCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return errors.New("connection refused")
}
func (failingCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, errors.New("connection refused")
}
func (failingCache) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	return 0, errors.New("connection refused")
}

var _ repository.Cache = failingCache{}

func TestLimiter_FailsOpenByDefault(t *testing.T) {
	cfg := config.RateLimitConfig{MaxAttempts: 5, Window: 900 * time.Second}
	limiter := NewLimiter(failingCache{}, cfg, zerolog.Nop())

	assert.False(t, limiter.Blocked(context.Background(), "1.2.3.4"))
}

func TestLimiter_FailClosed(t *testing.T) {
	cfg := config.RateLimitConfig{MaxAttempts: 5, Window: 900 * time.Second, FailClosed: true}
	limiter := NewLimiter(failingCache{}, cfg, zerolog.Nop())

	assert.True(t, limiter.Blocked(context.Background(), "1.2.3.4"))
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.0.2.10:51234",
			want:       "192.0.2.10",
		},
		{
			name:       "forwarded single entry",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded chain takes first entry",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "203.0.113.7, 10.0.0.1, 10.0.0.2",
			want:       "203.0.113.7",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.10",
			want:       "192.0.2.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/admin/login/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, ClientKey(r))
		})
	}
}
