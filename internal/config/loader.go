// Package config loads the service configuration from the process
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the booking
// service.
type Config struct {
	HTTPPort    int
	SQLiteDSN   string
	LogLevel    string
	RateLimit   int // requests per minute per client
	RateBurst   int
	CORSOrigins []string
}

// Load parses configuration values from the current process environment.
// Every field has a default; set values are validated and reported together.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:    5174,
		SQLiteDSN:   "file:venued.db",
		LogLevel:    "info",
		RateLimit:   120,
		RateBurst:   120,
		CORSOrigins: []string{"*"},
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("VENUE_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "VENUE_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("VENUE_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if level := strings.TrimSpace(os.Getenv("VENUE_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if limitValue := strings.TrimSpace(os.Getenv("VENUE_RATE_LIMIT")); limitValue != "" {
		limit, err := strconv.Atoi(limitValue)
		if err != nil || limit <= 0 {
			invalid = append(invalid, "VENUE_RATE_LIMIT")
		} else {
			cfg.RateLimit = limit
		}
	}

	if burstValue := strings.TrimSpace(os.Getenv("VENUE_RATE_BURST")); burstValue != "" {
		burst, err := strconv.Atoi(burstValue)
		if err != nil || burst <= 0 {
			invalid = append(invalid, "VENUE_RATE_BURST")
		} else {
			cfg.RateBurst = burst
		}
	}

	if originsValue := strings.TrimSpace(os.Getenv("VENUE_CORS_ORIGINS")); originsValue != "" {
		origins := make([]string, 0, 2)
		for _, origin := range strings.Split(originsValue, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		if len(origins) == 0 {
			invalid = append(invalid, "VENUE_CORS_ORIGINS")
		} else {
			cfg.CORSOrigins = origins
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
