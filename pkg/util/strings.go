package util

import "unicode/utf8"

// MaxErrorBodySize is the default cap for response bodies quoted in errors.
const MaxErrorBodySize = 512

// truncatedSuffix marks text cut by Truncate.
const truncatedSuffix = "...(truncated)"

// Truncate caps s at maxSize bytes without splitting a UTF-8 sequence and
// appends "...(truncated)" when it cut anything. If maxSize <= 0, uses
// MaxErrorBodySize.
func Truncate(s string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxErrorBodySize
	}
	if len(s) <= maxSize {
		return s
	}
	cut := maxSize
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncatedSuffix
}
