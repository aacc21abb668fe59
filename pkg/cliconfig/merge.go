package cliconfig

import "slices"

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.APIURL != "" {
		target.APIURL = source.APIURL
		target.Sources[KeyAPIURL] = sourceType
	}
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources[KeyTimeout] = sourceType
	}
	if source.PageSize != 0 {
		target.PageSize = source.PageSize
		target.Sources[KeyPageSize] = sourceType
	}
	if len(source.PageSizes) > 0 {
		target.PageSizes = slices.Clone(source.PageSizes)
		target.Sources[KeyPageSizes] = sourceType
	}
	if source.StateFile != "" {
		target.StateFile = source.StateFile
		target.Sources[KeyStateFile] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources[KeyLogLevel] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources[KeyLogFormat] = sourceType
	}
	if source.LogFile != "" {
		target.LogFile = source.LogFile
		target.Sources[KeyLogFile] = sourceType
	}
}
