// Package cliconfig provides configuration types and loading for the roster CLI.
package cliconfig

import "time"

// Config represents the complete configuration for the roster CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.rosterrc.yaml in current directory)
// 4. Global config file (~/.config/roster/config.yaml)
// 5. Default values (lowest priority)
type Config struct {
	// Student API settings
	APIURL  string        `yaml:"apiUrl" json:"apiUrl"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Grid settings
	PageSize  int   `yaml:"pageSize" json:"pageSize"`
	PageSizes []int `yaml:"pageSizes,flow" json:"pageSizes"`

	// StateFile holds the saved filters and sorts of every view.
	StateFile string `yaml:"stateFile" json:"stateFile"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// Config keys, as used in YAML files and Sources.
const (
	KeyAPIURL    = "apiUrl"
	KeyTimeout   = "timeout"
	KeyPageSize  = "pageSize"
	KeyPageSizes = "pageSizes"
	KeyStateFile = "stateFile"
	KeyLogLevel  = "logLevel"
	KeyLogFormat = "logFormat"
	KeyLogFile   = "logFile"
)

// Keys lists every config key in display order.
var Keys = []string{
	KeyAPIURL, KeyTimeout, KeyPageSize, KeyPageSizes,
	KeyStateFile, KeyLogLevel, KeyLogFormat, KeyLogFile,
}
