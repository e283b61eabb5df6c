package config

import (
	"os"
	"time"
)

// CacheConfig defines settings for the event-detail response cache.
// When Enabled is false or no Redis client is configured, caching is
// disabled.  TTL must stay short: the dashboard relies on
// refetch-after-write, so stale reads beyond a few seconds would be
// visible to admins.  Mutating handlers additionally bust the cached
// entry for the touched event.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "5s")),
		Prefix:  getenv("CACHE_PREFIX", "eventdetail"),
	}
}

// Helper functions reused from redis.go and ratelimit.go
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
