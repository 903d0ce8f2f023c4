package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL      string
	JWTSecret        string
	Port             string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	RateLimitSearch  RateLimitConfig
	PhoneRegion      string
	MaxImageBytes    int64
	MaxDocumentBytes int64
	ProxyTimeout     time.Duration
	ProxyImageHosts  []string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret"),
		Port:             getEnv("PORT", "8080"),
		AccessTokenTTL:   parseDuration(getEnv("JWT_TTL", "1h"), time.Hour),
		RefreshTokenTTL:  parseDuration(getEnv("JWT_REFRESH_TTL", "720h"), 720*time.Hour),
		PhoneRegion:      getEnv("PHONE_REGION", "ID"),
		MaxImageBytes:    parseBytes(getEnv("MAX_IMAGE_BYTES", ""), 2<<20),
		MaxDocumentBytes: parseBytes(getEnv("MAX_DOCUMENT_BYTES", ""), 5<<20),
		ProxyTimeout:     parseDuration(getEnv("PROXY_TIMEOUT", "10s"), 10*time.Second),
		ProxyImageHosts:  parseHostList(getEnv("PROXY_IMAGE_HOSTS", "")),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SEARCH", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SEARCH value: %w", err)
	}
	cfg.RateLimitSearch = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}

// parseHostList splits a comma-separated host list. Google Drive is
// always proxied and does not need to be listed.
func parseHostList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	var hosts []string
	for _, host := range strings.Split(input, ",") {
		host = strings.TrimSpace(host)
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

func parseBytes(input string, fallback int64) int64 {
	if input == "" {
		return fallback
	}
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
