package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func GetEnvTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvTrimmedOrDefault(key, defaultValue string) string {
	v := strings.TrimSpace(os.Getenv(key))

	if v == "" {
		return defaultValue
	}

	return v
}

// FirstEnvTrimmed returns the first non-empty value among keys.
func FirstEnvTrimmed(keys ...string) string {
	for _, key := range keys {
		if v := GetEnvTrimmed(key); v != "" {
			return v
		}
	}
	return ""
}

// GetEnvPositiveInt ignores unparsable and non-positive values.
func GetEnvPositiveInt(key string, defaultValue int) int {
	if raw := GetEnvTrimmed(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvPositiveDuration ignores unparsable and non-positive values.
func GetEnvPositiveDuration(key string, defaultValue time.Duration) time.Duration {
	if raw := GetEnvTrimmed(key); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvBool falls back to defaultValue when the variable is unset or unparsable.
func GetEnvBool(key string, defaultValue bool) bool {
	if raw := GetEnvTrimmed(key); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			return parsed
		}
	}
	return defaultValue
}
