// Package config loads process configuration from the environment, and
// optionally from an HCL batch-defaults file for the CLI's --defaults flag.
package config

import (
	"os"
	"strconv"

	"github.com/csp-tools/sutbuild/internal/platform/logger"
)

// GetEnv returns the environment variable key, or defaultVal if unset.
func GetEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	return val
}

// GetEnvAsInt returns the environment variable key parsed as an int, or
// defaultVal if unset or unparsable.
func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", key)
	}
	valStr, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		if log != nil {
			log.Debug("environment variable could not be parsed as int, using default", "providedVal", valStr, "error", err)
		}
		return defaultVal
	}
	return i
}
