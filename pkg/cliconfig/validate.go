package cliconfig

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// MaxTimeout bounds the request timeout.
const MaxTimeout = 10 * time.Minute

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("apiUrl %q must be an http(s) URL", c.APIURL)
	}
	if c.Timeout <= 0 || c.Timeout > MaxTimeout {
		return fmt.Errorf("timeout %s is out of range (must be > 0 and <= %s)", c.Timeout, MaxTimeout)
	}
	if len(c.PageSizes) == 0 {
		return fmt.Errorf("pageSizes must not be empty")
	}
	for _, n := range c.PageSizes {
		if n <= 0 {
			return fmt.Errorf("pageSizes entry %d is out of range (must be > 0)", n)
		}
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("pageSize %d is out of range (must be > 0)", c.PageSize)
	}
	if !slices.Contains(c.PageSizes, c.PageSize) {
		return fmt.Errorf("pageSize %d is not one of pageSizes %v", c.PageSize, c.PageSizes)
	}
	if c.StateFile == "" {
		return fmt.Errorf("stateFile must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("logFormat %q is invalid (expected text or json)", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logLevel %q is invalid (expected debug, info, warn or error)", c.LogLevel)
	}
	return nil
}

// Source returns where key was set, or SourceDefault.
func (c *Config) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Value renders the value of key for display.
func (c *Config) Value(key string) string {
	switch key {
	case KeyAPIURL:
		return c.APIURL
	case KeyTimeout:
		return c.Timeout.String()
	case KeyPageSize:
		return fmt.Sprint(c.PageSize)
	case KeyPageSizes:
		parts := make([]string, len(c.PageSizes))
		for i, n := range c.PageSizes {
			parts[i] = fmt.Sprint(n)
		}
		return strings.Join(parts, ",")
	case KeyStateFile:
		return c.StateFile
	case KeyLogLevel:
		return c.LogLevel
	case KeyLogFormat:
		return c.LogFormat
	case KeyLogFile:
		return c.LogFile
	}
	return ""
}
