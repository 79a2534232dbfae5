package config

import "time"

// CacheConfig controls the Redis response cache applied to public browse
// endpoints.  Only GET responses are cached.  Booking writes rely on the
// TTL for freshness, so the TTL should stay short.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads cache settings from the environment with defaults
// suitable for development.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseCacheDur(getenv("CACHE_TTL", "15s")),
		Prefix:  getenv("CACHE_PREFIX", "cache"),
	}
}

func parseCacheDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
