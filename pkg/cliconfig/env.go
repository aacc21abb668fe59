package cliconfig

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names
const (
	EnvAPIURL    = "ROSTER_API_URL"
	EnvTimeout   = "ROSTER_TIMEOUT"
	EnvPageSize  = "ROSTER_PAGE_SIZE"
	EnvPageSizes = "ROSTER_PAGE_SIZES"
	EnvStateFile = "ROSTER_STATE_FILE"
	EnvLogLevel  = "ROSTER_LOG_LEVEL"
	EnvLogFormat = "ROSTER_LOG_FORMAT"
	EnvLogFile   = "ROSTER_LOG_FILE"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present and parse.
func LoadEnvConfig(cfg *Config) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	// ROSTER_API_URL
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
		cfg.Sources[KeyAPIURL] = SourceEnv
	}

	// ROSTER_TIMEOUT accepts a duration ("10s") or whole seconds ("10")
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, ok := parseTimeout(v); ok {
			cfg.Timeout = d
			cfg.Sources[KeyTimeout] = SourceEnv
		}
	}

	// ROSTER_PAGE_SIZE
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
			cfg.Sources[KeyPageSize] = SourceEnv
		}
	}

	// ROSTER_PAGE_SIZES is a comma-separated list
	if v := os.Getenv(EnvPageSizes); v != "" {
		if sizes, ok := parseSizes(v); ok {
			cfg.PageSizes = sizes
			cfg.Sources[KeyPageSizes] = SourceEnv
		}
	}

	// ROSTER_STATE_FILE
	if v := os.Getenv(EnvStateFile); v != "" {
		cfg.StateFile = v
		cfg.Sources[KeyStateFile] = SourceEnv
	}

	// ROSTER_LOG_LEVEL
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources[KeyLogLevel] = SourceEnv
	}

	// ROSTER_LOG_FORMAT
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources[KeyLogFormat] = SourceEnv
	}

	// ROSTER_LOG_FILE
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
		cfg.Sources[KeyLogFile] = SourceEnv
	}
}

func parseTimeout(v string) (time.Duration, bool) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, true
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	return 0, false
}

func parseSizes(v string) ([]int, bool) {
	parts := strings.Split(v, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		sizes = append(sizes, n)
	}
	return sizes, true
}
