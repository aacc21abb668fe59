// Package util provides small string helpers shared by the roster packages.
//
//   - Truncate caps server-supplied text before it reaches logs or errors
package util
