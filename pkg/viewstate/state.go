// Package viewstate holds the per-view filter and sort state of the roster
// views and persists it between sessions.
package viewstate

import (
	"fmt"
	"maps"
	"strings"

	"github.com/getmockd/roster/pkg/grid"
)

// Key is the store key the state is saved under.
const Key = "studentAppFilters"

// View names a grid whose state is tracked.
type View string

// Tracked views.
const (
	AllStudents       View = "allStudents"
	ExcellentStudents View = "excellentStudents"
	Honor             View = "honor"
)

// Views lists the tracked views in display order.
var Views = []View{AllStudents, ExcellentStudents, Honor}

// ParseView resolves a view name. Besides the stored names it accepts the
// short forms "all", "excellent" and "honor-candidates".
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allstudents", "all", "students":
		return AllStudents, nil
	case "excellentstudents", "excellent":
		return ExcellentStudents, nil
	case "honor", "honor-candidates", "honorcandidates":
		return Honor, nil
	}
	return "", fmt.Errorf("unknown view %q (expected one of: all, excellent, honor)", s)
}

// SortDir is the stored sort direction.
type SortDir string

// Stored sort directions.
const (
	ASC  SortDir = "ASC"
	DESC SortDir = "DESC"
)

// Direction converts d to a grid direction. Anything but DESC is ascending.
func (d SortDir) Direction() grid.Direction {
	if strings.EqualFold(string(d), string(DESC)) {
		return grid.Descending
	}
	return grid.Ascending
}

// FromDirection converts a grid direction to its stored form.
func FromDirection(dir grid.Direction) SortDir {
	if dir == grid.Descending {
		return DESC
	}
	return ASC
}

// ViewFilters is the saved state of one grid.
type ViewFilters struct {
	Dynamic map[string]string `json:"dynamic"`
	SortBy  string            `json:"sortBy"`
	SortDir SortDir           `json:"sortDir"`
}

// SortConfig returns the active sort, or nil when SortBy is empty.
func (f ViewFilters) SortConfig() *grid.Sort {
	if f.SortBy == "" {
		return nil
	}
	return &grid.Sort{Key: f.SortBy, Direction: f.SortDir.Direction()}
}

// Filters returns a copy of the dynamic filter map.
func (f ViewFilters) Filters() grid.Filters {
	out := make(grid.Filters, len(f.Dynamic))
	maps.Copy(out, f.Dynamic)
	return out
}

// WithSort returns f sorted by key in dir.
func (f ViewFilters) WithSort(key string, dir grid.Direction) ViewFilters {
	f.Dynamic = maps.Clone(f.Dynamic)
	f.SortBy = key
	f.SortDir = FromDirection(dir)
	return f
}

// WithFilter returns f with the filter on key set to value. An empty value
// removes the filter.
func (f ViewFilters) WithFilter(key, value string) ViewFilters {
	next := maps.Clone(f.Dynamic)
	if next == nil {
		next = map[string]string{}
	}
	if value == "" {
		delete(next, key)
	} else {
		next[key] = value
	}
	f.Dynamic = next
	return f
}

// WithoutFilters returns f with every filter removed.
func (f ViewFilters) WithoutFilters() ViewFilters {
	f.Dynamic = map[string]string{}
	return f
}

func (f ViewFilters) isZero() bool {
	return f.Dynamic == nil && f.SortBy == "" && f.SortDir == ""
}

func (f ViewFilters) normalized() ViewFilters {
	if f.Dynamic == nil {
		f.Dynamic = map[string]string{}
	}
	return f
}

// HonorFilters is the saved state of the honor candidates grid.
type HonorFilters struct {
	ViewFilters
	TopPerDepartment bool `json:"topPerDepartment"`
}

// AppState is everything saved under Key.
type AppState struct {
	AllStudents       ViewFilters  `json:"allStudents"`
	ExcellentStudents ViewFilters  `json:"excellentStudents"`
	Honor             HonorFilters `json:"honor"`
}

// Defaults returns the state of a first run.
func Defaults() AppState {
	return AppState{
		AllStudents:       DefaultFor(AllStudents),
		ExcellentStudents: DefaultFor(ExcellentStudents),
		Honor:             HonorFilters{ViewFilters: DefaultFor(Honor)},
	}
}

// DefaultFor returns the initial filters of v. Clearing a sort returns to
// this sort rather than to source order.
func DefaultFor(v View) ViewFilters {
	switch v {
	case ExcellentStudents, Honor:
		return ViewFilters{Dynamic: map[string]string{}, SortBy: "gpa", SortDir: DESC}
	default:
		return ViewFilters{Dynamic: map[string]string{}, SortBy: "id", SortDir: ASC}
	}
}

// Get returns the filters of v.
func (s AppState) Get(v View) ViewFilters {
	switch v {
	case ExcellentStudents:
		return s.ExcellentStudents
	case Honor:
		return s.Honor.ViewFilters
	default:
		return s.AllStudents
	}
}

// With returns s with the filters of v replaced.
func (s AppState) With(v View, f ViewFilters) AppState {
	switch v {
	case ExcellentStudents:
		s.ExcellentStudents = f
	case Honor:
		s.Honor.ViewFilters = f
	default:
		s.AllStudents = f
	}
	return s
}

// WithClearedSort returns s with the sort of v back at its default.
func (s AppState) WithClearedSort(v View) AppState {
	f := s.Get(v)
	def := DefaultFor(v)
	f.Dynamic = maps.Clone(f.Dynamic)
	f.SortBy, f.SortDir = def.SortBy, def.SortDir
	return s.With(v, f)
}

// ToggleTopPerDepartment flips the honor grid's data source.
func (s AppState) ToggleTopPerDepartment() AppState {
	s.Honor.TopPerDepartment = !s.Honor.TopPerDepartment
	return s
}

// normalized fills views missing from a stored document with their defaults.
func (s AppState) normalized() AppState {
	for _, v := range Views {
		f := s.Get(v)
		if f.isZero() {
			f = DefaultFor(v)
		}
		s = s.With(v, f.normalized())
	}
	return s
}
