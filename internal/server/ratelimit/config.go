package ratelimit

import "time"

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/" and is longer than "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // buckets unused this long are dropped
	Endpoints       []EndpointConfig
}

// UploadConfig limits POST / to limit requests per window per client.
// Everything else is unlimited.
func UploadConfig(enabled bool, limit int, window time.Duration, burst int) Config {
	return Config{
		Enabled:         enabled,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Endpoints: []EndpointConfig{
			{Path: "/", Method: "POST", Limit: limit, Window: window, Burst: burst},
		},
	}
}
