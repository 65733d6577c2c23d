package config

import (
    "os"
    "strconv"
    "time"
)

// RateLimitConfig defines settings for the Redis token-bucket rate
// limiter applied in front of the API.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig. Defaults allow 60 requests with one token refilled
// per second, keyed by client IP.
func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       atoi(getenv("RATE_LIMIT_CAPACITY", "60")),
        RefillTokens:   atoi(getenv("RATE_LIMIT_REFILL_TOKENS", "1")),
        RefillInterval: parseDur(getenv("RATE_LIMIT_REFILL_INTERVAL", "1s")),
        TTL:            parseDur(getenv("RATE_LIMIT_TTL", "10m")),
        KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip"),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "ratelimit"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
}

func envBool(key string, def bool) bool {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    b, err := strconv.ParseBool(v)
    if err != nil {
        return def
    }
    return b
}
