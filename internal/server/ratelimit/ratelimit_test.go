package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	l := NewLimiter(cfg)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestBucket_TakeAndRefill(t *testing.T) {
	clock := newFakeClock()
	b := newBucket(10, 1.0, clock.Now())

	for i := 0; i < 10; i++ {
		allowed, remaining, _ := b.take(clock.Now())
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 9-i, remaining)
	}

	allowed, _, resetTime := b.take(clock.Now())
	assert.False(t, allowed)
	assert.Equal(t, clock.Now().Add(10*time.Second), resetTime)

	clock.Advance(1100 * time.Millisecond)
	allowed, _, _ = b.take(clock.Now())
	assert.True(t, allowed)
	allowed, _, _ = b.take(clock.Now())
	assert.False(t, allowed)
}

func TestBucket_RefillCapsAtCapacity(t *testing.T) {
	clock := newFakeClock()
	b := newBucket(3, 1.0, clock.Now())

	clock.Advance(time.Hour)
	_, remaining, resetTime := b.take(clock.Now())
	assert.Equal(t, 2, remaining)
	assert.Equal(t, clock.Now().Add(time.Second), resetTime)
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/other", http.MethodGet)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/other", http.MethodGet)
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)

	// other clients have their own bucket
	allowed, _ = l.Allow("10.0.0.9", "/other", http.MethodGet)
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/api/score", http.MethodPost)
		require.True(t, allowed)
	}

	allowed, info := l.Allow("192.168.1.1", "/health", http.MethodGet)
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/api/score", http.MethodPost)
		require.True(t, allowed)
	}
}

func TestLimiter_UploadEndpoints(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: UploadEndpoints(5, time.Minute, 2),
	})

	for _, path := range []string{ScorePath, RefinePath} {
		for i := 0; i < 2; i++ {
			allowed, info := l.Allow("127.0.0.1", path, http.MethodPost)
			require.True(t, allowed, "%s request %d", path, i+1)
			assert.Equal(t, 5, info.Limit)
		}
		allowed, _ := l.Allow("127.0.0.1", path, http.MethodPost)
		assert.False(t, allowed, path)
	}

	// the default limit still applies elsewhere
	allowed, info := l.Allow("127.0.0.1", "/api/other", http.MethodPost)
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_UnlimitedRoutes(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/health", http.MethodGet)
		require.True(t, allowed)
		allowed, _ = l.Allow("127.0.0.1", "/metrics", http.MethodGet)
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if allowed, _ := l.Allow("127.0.0.1", "/other", http.MethodGet); allowed {
					mu.Lock()
					allowedCount++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestLimiter_Sweep(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Hour})

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i), "/other", http.MethodGet)
	}
	clock.Advance(30 * time.Minute)
	l.Allow("10.0.0.0", "/other", http.MethodGet)

	clock.Advance(45 * time.Minute)
	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "10.0.0.0:/other:GET")
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	l.Stop()
	l.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l, _ := newTestLimiter(t, nil)

	allowed, info := l.Allow("127.0.0.1", "/other", http.MethodGet)
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/score", Method: http.MethodPost, Limit: 5},
		{Path: "/api/batch/", Method: http.MethodPost, Limit: 7},
	}

	assert.Equal(t, 5, MatchEndpoint("/api/score", http.MethodPost, configs).Limit)
	assert.Equal(t, 7, MatchEndpoint("/api/batch/42", http.MethodPost, configs).Limit)
	assert.Nil(t, MatchEndpoint("/api/score", http.MethodGet, configs))
	assert.Nil(t, MatchEndpoint("/api/scores", http.MethodPost, configs))
	assert.Equal(t, 0, MatchEndpoint("/health", http.MethodGet, configs).Limit)
}

func TestFromSettings(t *testing.T) {
	cfg := FromSettings(config.RateLimitConfig{
		Enabled:         true,
		DefaultLimit:    500,
		DefaultWindow:   time.Minute,
		UploadLimit:     20,
		UploadWindow:    time.Hour,
		UploadBurst:     4,
		CleanupInterval: time.Minute,
		Whitelist:       " 10.0.0.1 ,,10.0.0.2",
	})

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 500, cfg.DefaultLimit)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)
	require.Len(t, cfg.EndpointConfigs, 2)
	assert.Equal(t, EndpointConfig{Path: ScorePath, Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 4}, cfg.EndpointConfigs[0])

	assert.False(t, FromSettings(config.RateLimitConfig{Enabled: false}).Enabled)
}
