package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/ats-scorer/internal/config"
)

// Upload endpoints guarded by the stricter limit
const (
	ScorePath  = "/api/score"
	RefinePath = "/api/refine"
)

// defaultIdleTTL is how long an untouched bucket is kept
const defaultIdleTTL = time.Hour

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" matches by prefix
	Method string        // HTTP method
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// FromSettings builds a limiter Config from the application rate limit settings.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		IdleTTL:         defaultIdleTTL,
		Whitelist:       ParseIPList(s.Whitelist),
		Blacklist:       ParseIPList(s.Blacklist),
		EndpointConfigs: UploadEndpoints(s.UploadLimit, s.UploadWindow, s.UploadBurst),
	}
}

// UploadEndpoints returns the limits for the document upload routes. Scoring and
// refinement parse whole documents, so they get their own, stricter budget.
func UploadEndpoints(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: ScorePath, Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
		{Path: RefinePath, Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
