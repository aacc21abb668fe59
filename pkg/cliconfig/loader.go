package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config and state
	GlobalConfigDir = "roster"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".rosterrc.yaml", ".rosterrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .rosterrc.yaml or .rosterrc.yml in the current directory.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findFirst(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	return findFirst(filepath.Join(configDir, GlobalConfigDir), GlobalConfigFileNames), nil
}

// SearchPaths returns every path that LoadAll looks at, global first.
func SearchPaths() []string {
	var paths []string
	if configDir, err := os.UserConfigDir(); err == nil {
		for _, name := range GlobalConfigFileNames {
			paths = append(paths, filepath.Join(configDir, GlobalConfigDir, name))
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		for _, name := range LocalConfigFileNames {
			paths = append(paths, filepath.Join(cwd, name))
		}
	}
	return paths
}

func findFirst(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a Config from a YAML file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		cfgErr := &ConfigError{Path: path, Message: err.Error()}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
			cfgErr.Message = typeErr.Errors[0]
		}
		return nil, cfgErr
	}

	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: env > local config > global config > defaults. Flags are
// applied by the caller with MergeConfig(cfg, flags, SourceFlag).
// A config file that exists but cannot be parsed is an error.
func LoadAll() (*Config, error) {
	// Start with defaults
	cfg := NewDefault()

	// Load global config
	if globalPath, err := FindGlobalConfig(); err == nil && globalPath != "" {
		globalCfg, err := LoadConfigFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
		MergeConfig(cfg, globalCfg, SourceGlobal)
	}

	// Load local config
	if localPath, err := FindLocalConfig(); err == nil && localPath != "" {
		localCfg, err := LoadConfigFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	}

	// Load environment variables
	LoadEnvConfig(cfg)

	return cfg, nil
}
