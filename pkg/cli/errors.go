package cli

import "errors"

// Common CLI errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrNoChanges       = errors.New("nothing to update - pass at least one field flag")
	ErrNotInteractive  = errors.New("no field flags given and stdin is not a terminal")
)
