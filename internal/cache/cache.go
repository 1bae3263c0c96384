// Package cache stores score reports in Redis keyed by the request content.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyPrefix namespaces report entries
const keyPrefix = "ats:report:"

// Settings holds the connection parameters for the report cache.
type Settings struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// ReportCache is a Redis-backed cache of score reports.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New wraps an existing Redis client.
func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ReportCache {
	return &ReportCache{client: client, ttl: ttl, logger: observability.OrNop(logger)}
}

// Connect creates a Redis client from settings and verifies it with a ping.
func Connect(ctx context.Context, settings Settings, logger *zap.Logger) (*ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         settings.Address,
		Password:     settings.Password,
		DB:           settings.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return New(client, settings.TTL, logger), nil
}

// Key derives the cache key for a scoring request. Each field is length-prefixed
// so that different splits of the same bytes never collide.
func Key(data []byte, filename, jobDescription string) string {
	h := sha256.New()
	for _, part := range [][]byte{data, []byte(filename), []byte(jobDescription)} {
		h.Write([]byte(strconv.Itoa(len(part))))
		h.Write([]byte{':'})
		h.Write(part)
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached report for key. A miss returns (nil, false, nil).
func (c *ReportCache) Get(ctx context.Context, key string) (*types.ScoreReport, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		observability.CacheLookups.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report types.ScoreReport
	if err := json.Unmarshal(val, &report); err != nil {
		observability.CacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}

	observability.CacheLookups.WithLabelValues("hit").Inc()
	return &report, true, nil
}

// Set stores report under key with the configured TTL.
func (c *ReportCache) Set(ctx context.Context, key string, report *types.ScoreReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *ReportCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
