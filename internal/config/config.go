package config

import (
	"os"
	"strconv"
	"time"
)

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Config is the server configuration read once at startup. Provider
// credentials remain read-only pass-through for the routing engine; the
// server never stores or rewrites them.
type Config struct {
	Env  string
	Port string

	GoogleAPIKey string
	ORSAPIKey    string
	OSRMBaseURL  string

	// CacheBackend selects the optional distance cache: postgres, redis
	// or none.
	CacheBackend string
	DatabaseURL  string
	RedisAddr    string
	CacheTTL     time.Duration
}

// Load reads the full server configuration from the environment.
func Load() Config {
	ttl := 24 * time.Hour
	if raw := os.Getenv("DISTANCE_CACHE_TTL_HOURS"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h > 0 {
			ttl = time.Duration(h) * time.Hour
		}
	}

	return Config{
		Env:          Get("APP_ENV", "development"),
		Port:         Get("PORT", "8080"),
		GoogleAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		ORSAPIKey:    os.Getenv("ORS_API_KEY"),
		OSRMBaseURL:  os.Getenv("OSRM_BASE_URL"),
		CacheBackend: Get("CACHE_BACKEND", "none"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    Get("REDIS_ADDR", "localhost:6379"),
		CacheTTL:     ttl,
	}
}
