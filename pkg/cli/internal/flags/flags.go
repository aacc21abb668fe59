// Package flags provides reusable flag types for CLI commands.
package flags

import "strings"

// StringSlice implements pflag.Value for repeatable string flags. Unlike
// pflag's own slice flags it never splits on commas, so filter values may
// contain them.
type StringSlice []string

// String returns the string representation of the flag value.
func (s *StringSlice) String() string {
	return "[" + strings.Join(*s, " ") + "]"
}

// Set appends a value to the slice.
func (s *StringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Type specifies the type label for Cobra flags.
func (s *StringSlice) Type() string {
	return "stringArray"
}
