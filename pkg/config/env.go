package config

import (
	"os"
	"strings"
)

// Environment names accepted in SHIFTBOARD_SERVER_ENVIRONMENT
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// GetEnv returns the value of an environment variable or a default value if not set.
func GetEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// IsProductionLike reports whether env requires explicit database, export and broker settings
func IsProductionLike(env string) bool {
	switch strings.ToLower(env) {
	case EnvStaging, EnvProduction:
		return true
	default:
		return false
	}
}
