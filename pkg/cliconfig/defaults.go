package cliconfig

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultAPIURL is the default student API base URL.
const DefaultAPIURL = "http://localhost:8080"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultPageSize is the default number of rows per page.
const DefaultPageSize = 5

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// StateFileName is the file name of the saved view state.
const StateFileName = "state.json"

// DefaultPageSizes returns the page sizes offered by the page-size selector.
func DefaultPageSizes() []int {
	return []int{5, 10, 20}
}

// DefaultStateFile returns the default view state path,
// $XDG_CONFIG_HOME/roster/state.json (or the platform equivalent).
func DefaultStateFile() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, GlobalConfigDir, StateFileName)
}

// NewDefault creates a new Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout,
		PageSize:  DefaultPageSize,
		PageSizes: DefaultPageSizes(),
		StateFile: DefaultStateFile(),
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}

	// Mark all as default source
	for _, key := range Keys {
		if key == KeyLogFile {
			continue
		}
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
