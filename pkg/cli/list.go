package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/getmockd/roster/pkg/cli/internal/flags"
	"github.com/getmockd/roster/pkg/cli/internal/output"
	"github.com/getmockd/roster/pkg/cli/internal/parse"
	"github.com/getmockd/roster/pkg/grid"
	"github.com/getmockd/roster/pkg/student"
	"github.com/getmockd/roster/pkg/viewstate"
	"github.com/spf13/cobra"
)

// listFlags are the grid intents and paging flags of the list commands.
type listFlags struct {
	filters      flags.StringSlice
	clearFilter  flags.StringSlice
	clearFilters bool
	sort         string
	clearSort    bool
	page         int
	pageSize     int
	where        string
}

func (f *listFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Var(&f.filters, "filter", "Set a column filter, field=value (repeatable; empty value clears)")
	fs.Var(&f.clearFilter, "clear-filter", "Clear the filter on a field (repeatable)")
	fs.BoolVar(&f.clearFilters, "clear-filters", false, "Clear every filter of the view")
	fs.StringVar(&f.sort, "sort", "", "Sort by field[:asc|desc]")
	fs.BoolVar(&f.clearSort, "clear-sort", false, "Return the sort to the view default")
	fs.IntVar(&f.page, "page", 1, "Page to print")
	fs.IntVar(&f.pageSize, "page-size", 0, "Rows per page (one of the configured page sizes)")
	fs.StringVar(&f.where, "where", "", "Extra client-side predicate, e.g. 'gpa >= 95 && department == \"CS\"'")
	cmd.MarkFlagsMutuallyExclusive("sort", "clear-sort")
}

// listPage is the JSON shape of one printed page.
type listPage struct {
	View      string            `json:"view"`
	Page      int               `json:"page"`
	PageCount int               `json:"pageCount"`
	PageSize  int               `json:"pageSize"`
	Total     int               `json:"total"`
	SortBy    string            `json:"sortBy,omitempty"`
	SortDir   string            `json:"sortDir,omitempty"`
	Filters   map[string]string `json:"filters"`
	Rows      []student.Student `json:"rows"`
}

func columnKeys(columns []grid.Column) []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return keys
}

func findColumn(columns []grid.Column, key string) (grid.Column, bool) {
	i := slices.IndexFunc(columns, func(c grid.Column) bool { return c.Key == key })
	if i < 0 {
		return grid.Column{}, false
	}
	return columns[i], true
}

// applyIntents turns the filter and sort flags into view-state changes, in
// the order a user would click them: clear, set filters, then sort.
func (a *app) applyIntents(view viewstate.View, columns []grid.Column, f *listFlags) error {
	if f.clearFilters {
		if err := a.state.ClearFilters(view); err != nil {
			return fmt.Errorf("save view state: %w", err)
		}
	}
	for _, key := range f.clearFilter {
		if _, ok := findColumn(columns, key); !ok {
			return fmt.Errorf("unknown field %q (expected one of %s)", key, strings.Join(columnKeys(columns), ", "))
		}
		if err := a.state.SetFilter(view, key, ""); err != nil {
			return fmt.Errorf("save view state: %w", err)
		}
	}
	for _, raw := range f.filters {
		key, value, err := parse.Filter(raw)
		if err != nil {
			return err
		}
		col, ok := findColumn(columns, key)
		if !ok {
			return fmt.Errorf("unknown field %q (expected one of %s)", key, strings.Join(columnKeys(columns), ", "))
		}
		if !col.Filterable {
			return fmt.Errorf("field %q is not filterable", key)
		}
		if err := a.state.SetFilter(view, key, value); err != nil {
			return fmt.Errorf("save view state: %w", err)
		}
	}

	if f.clearSort {
		if err := a.state.ClearSort(view); err != nil {
			return fmt.Errorf("save view state: %w", err)
		}
	}
	if f.sort != "" {
		key, rawDir, err := parse.Sort(f.sort)
		if err != nil {
			return err
		}
		dir, err := grid.ParseDirection(rawDir)
		if err != nil {
			return err
		}
		col, ok := findColumn(columns, key)
		if !ok {
			return fmt.Errorf("unknown field %q (expected one of %s)", key, strings.Join(columnKeys(columns), ", "))
		}
		if !col.Sortable {
			return fmt.Errorf("field %q is not sortable", key)
		}
		if err := a.state.Sort(view, key, dir); err != nil {
			return fmt.Errorf("save view state: %w", err)
		}
	}
	return nil
}

// runList applies the intents, fetches, derives the requested page and
// prints it.
func (a *app) runList(ctx context.Context, view viewstate.View, columns []grid.Column, f *listFlags,
	fetch func(context.Context) ([]student.Student, error)) error {
	pageSize := a.cfg.PageSize
	if f.pageSize != 0 {
		if !slices.Contains(a.cfg.PageSizes, f.pageSize) {
			return fmt.Errorf("--page-size %d is not one of %v", f.pageSize, a.cfg.PageSizes)
		}
		pageSize = f.pageSize
	}
	if f.page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	pred, err := compileWhere(f.where)
	if err != nil {
		return err
	}
	if err := a.applyIntents(view, columns, f); err != nil {
		return err
	}

	records, err := fetch(ctx)
	if err != nil {
		a.logger.Error("failed to fetch students", "view", string(view), "error", err)
		return apiError(err)
	}
	if records, err = pred.apply(records); err != nil {
		return err
	}

	engine := grid.New[student.Student](columns,
		grid.WithPageSize(pageSize),
		grid.WithPageSizes(a.cfg.PageSizes...),
	)
	filters := a.state.Filters(view)
	engine.View(records, filters.Filters(), filters.SortConfig())
	engine.GoTo(f.page)
	v := engine.View(records, filters.Filters(), filters.SortConfig())
	if f.page > v.PageCount && v.Total > 0 {
		a.warn("page %d is out of range, showing page %d of %d", f.page, v.Page, v.PageCount)
	}

	data := listPage{
		View:      string(view),
		Page:      v.Page,
		PageCount: v.PageCount,
		PageSize:  v.PageSize,
		Total:     v.Total,
		SortBy:    filters.SortBy,
		SortDir:   string(filters.SortDir),
		Filters:   filters.Filters().Active(),
		Rows:      v.Rows,
	}
	if data.Rows == nil {
		data.Rows = []student.Student{}
	}
	return a.printResult(data, func(w io.Writer) {
		printGrid(w, columns, filters, v)
	})
}

func printGrid(w io.Writer, columns []grid.Column, filters viewstate.ViewFilters, v grid.View[student.Student]) {
	if v.Total == 0 {
		fmt.Fprintln(w, "No students match the current filters")
		return
	}
	sortCfg := filters.SortConfig()

	tw := output.Table(w)
	headers := make([]string, len(columns))
	for i, c := range columns {
		h := strings.ToUpper(c.Header)
		if sortCfg.On(c.Key) {
			h += " " + sortCfg.Direction.Indicator()
		}
		if filters.Dynamic[c.Key] != "" {
			h += " *"
		}
		headers[i] = h
	}
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, s := range v.Rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = grid.Stringify(s.Field(c.Key))
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, v.Summary())
	if active := filters.Filters().Active(); len(active) > 0 {
		keys := make([]string, 0, len(active))
		for k := range active {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%q", k, active[k])
		}
		fmt.Fprintf(w, "Filters: %s\n", strings.Join(parts, " "))
	}
}
