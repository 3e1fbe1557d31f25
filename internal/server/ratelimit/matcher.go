package ratelimit

import (
	"strings"
)

// unlimited is returned for endpoints that are never rate limited.
var unlimited = EndpointConfig{Path: "/health", Method: "GET"}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Exact patterns win over prefix patterns.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == unlimited.Path && method == unlimited.Method {
		cfg := unlimited
		return &cfg
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && matchPattern(config.Path, path) {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && matchPrefix(config.Path, path) {
			return config
		}
	}

	return nil
}

func matchPattern(pattern, path string) bool {
	if !strings.Contains(pattern, "{") {
		return pattern == path
	}
	ps, xs := splitPath(pattern), splitPath(path)
	if len(ps) != len(xs) {
		return false
	}
	return segmentsMatch(ps, xs)
}

func matchPrefix(pattern, path string) bool {
	ps, xs := splitPath(strings.TrimSuffix(pattern, "/")), splitPath(path)
	if len(xs) <= len(ps) {
		return false
	}
	return segmentsMatch(ps, xs[:len(ps)])
}

func segmentsMatch(pattern, path []string) bool {
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
