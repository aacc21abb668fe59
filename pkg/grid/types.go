package grid

import (
	"fmt"
	"strings"
)

// Record is a row the engine can read. Field returns a primitive value
// (string, integer, float, bool) or nil when the record has no such field.
type Record interface {
	Field(key string) any
}

// Column describes one column of a view. Columns are static for the lifetime
// of an Engine.
type Column struct {
	Key        string `json:"key"`
	Header     string `json:"header"`
	Sortable   bool   `json:"sortable,omitempty"`
	Filterable bool   `json:"filterable,omitempty"`
}

// HasMenu reports whether the column header carries a ColumnMenu.
func (c Column) HasMenu() bool {
	return c.Sortable || c.Filterable
}

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// ParseDirection accepts "ascending"/"descending", their "asc"/"desc"
// abbreviations and the ASC/DESC wire form, in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q (want asc or desc)", s)
	}
}

// Indicator returns the header glyph for the direction.
func (d Direction) Indicator() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// Sort is the single active sort. A nil *Sort means unsorted.
type Sort struct {
	Key       string
	Direction Direction
}

// On reports whether s sorts by key.
func (s *Sort) On(key string) bool {
	return s != nil && s.Key == key
}

// Filters maps a column key to a text needle. Missing keys and empty needles
// mean "no filter on this column".
type Filters map[string]string

// Active returns a copy holding only the non-empty needles.
func (f Filters) Active() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Equal compares the active needles of f and o.
func (f Filters) Equal(o Filters) bool {
	a, b := f.Active(), o.Active()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
