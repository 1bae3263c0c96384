package ratelimit

import (
	"net/http"
	"strings"
)

// unlimitedRoutes are never rate limited
var unlimitedRoutes = map[string]bool{
	http.MethodGet + " /health":  true,
	http.MethodGet + " /metrics": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil when the default limit applies. Paths ending in "/" match by prefix.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimitedRoutes[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		cfg := &configs[i]
		if cfg.Method == method && strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			return cfg
		}
	}

	return nil
}
