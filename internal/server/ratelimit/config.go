package ratelimit

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	// Path is a route pattern. A segment written as {name} matches any single
	// segment; a pattern ending in "/" matches by prefix.
	Path   string
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// settings mirrors the RESUME_EDITOR_RATE_LIMIT_* environment.
type settings struct {
	Enabled         bool          `envconfig:"ENABLED" default:"true"`
	DefaultLimit    int           `envconfig:"DEFAULT_LIMIT" default:"1000"`
	DefaultWindow   time.Duration `envconfig:"DEFAULT_WINDOW" default:"1m"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"5m"`
	Whitelist       string        `envconfig:"WHITELIST"`
	Blacklist       string        `envconfig:"BLACKLIST"`
}

// EnvPrefix prefixes the rate limit environment variables.
const EnvPrefix = "RESUME_EDITOR_RATE_LIMIT"

// LoadConfig loads rate limiting configuration from environment variables.
// Malformed values fall back to the defaults.
func LoadConfig() *Config {
	var s settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		s = settings{Enabled: true, DefaultLimit: 1000, DefaultWindow: time.Minute, CleanupInterval: 5 * time.Minute}
	}
	if !s.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       parseIPList(s.Whitelist),
		Blacklist:       parseIPList(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Credential checks
		{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// PDF rendering drives a headless browser
		{Path: "/export/pdf", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/export/pdf/stream", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/api/generate-pdf", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Paid model calls
		{Path: "/ai/suggest", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Everything else uses the default limit; /health is unlimited
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
