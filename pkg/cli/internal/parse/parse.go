// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"strings"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to ':'.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Filter parses a "field=value" filter. The value may be empty, which clears
// the filter; the field may not.
func Filter(s string) (field, value string, err error) {
	field, value, ok := KeyValue(s, '=')
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return "", "", fmt.Errorf("invalid filter %q (expected field=value)", s)
	}
	return field, value, nil
}

// Sort parses "field", "field:asc" or "field:desc". A bare field sorts
// ascending; the direction is returned as written for the caller to parse.
func Sort(s string) (field, dir string, err error) {
	field, dir, ok := KeyValue(s, ':')
	if !ok {
		field, dir = s, "asc"
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return "", "", fmt.Errorf("invalid sort %q (expected field[:asc|desc])", s)
	}
	return field, strings.TrimSpace(dir), nil
}

// SplitTrim splits a string by separator and trims each part.
func SplitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
