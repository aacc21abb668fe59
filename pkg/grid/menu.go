package grid

import "fmt"

// MenuItemKind identifies an entry of a ColumnMenu.
type MenuItemKind int

// Column menu entries.
const (
	ItemSortAscending MenuItemKind = iota
	ItemSortDescending
	ItemClearSort
	ItemFilterInput
	ItemClearFilter
)

// MenuItem is one rendered entry of a ColumnMenu.
type MenuItem struct {
	Kind  MenuItemKind
	Label string
}

// ColumnMenu is the per-column popover exposing sort and filter actions.
type ColumnMenu struct {
	dismissible
	column  Column
	intents Intents
}

// NewColumnMenu creates a closed menu for column.
func NewColumnMenu(column Column, intents Intents) *ColumnMenu {
	return &ColumnMenu{column: column, intents: intents}
}

// Column returns the column the menu is anchored to.
func (m *ColumnMenu) Column() Column {
	return m.column
}

// ButtonLabel is the accessible label of the header menu button.
func (m *ColumnMenu) ButtonLabel() string {
	return fmt.Sprintf("Options for column %s", m.column.Header)
}

// Items lists the entries shown for the current sort and filter value.
func (m *ColumnMenu) Items(sort *Sort, filterValue string) []MenuItem {
	var items []MenuItem
	if m.column.Sortable {
		items = append(items,
			MenuItem{Kind: ItemSortAscending, Label: "Sort Ascending"},
			MenuItem{Kind: ItemSortDescending, Label: "Sort Descending"},
		)
		if sort.On(m.column.Key) {
			items = append(items, MenuItem{Kind: ItemClearSort, Label: "Clear Sort"})
		}
	}
	if m.column.Filterable {
		items = append(items, MenuItem{Kind: ItemFilterInput, Label: fmt.Sprintf("Filter %s...", m.column.Header)})
		if filterValue != "" {
			items = append(items, MenuItem{Kind: ItemClearFilter, Label: "Clear Filter"})
		}
	}
	return items
}

// Sort emits a sort intent for this column and closes the menu.
func (m *ColumnMenu) Sort(dir Direction) {
	m.intents.sort(m.column.Key, dir)
	m.Close()
}

// ClearSort emits a clear-sort intent and closes the menu.
func (m *ColumnMenu) ClearSort() {
	m.intents.clearSort()
	m.Close()
}

// TypeFilter emits the raw filter text. The menu stays open while typing.
func (m *ColumnMenu) TypeFilter(value string) {
	m.intents.filterChange(m.column.Key, value)
}

// ClearFilter emits an empty filter value and closes the menu.
func (m *ColumnMenu) ClearFilter() {
	m.intents.filterChange(m.column.Key, "")
	m.Close()
}

// Activate runs the action behind a non-input item.
func (m *ColumnMenu) Activate(kind MenuItemKind) {
	switch kind {
	case ItemSortAscending:
		m.Sort(Ascending)
	case ItemSortDescending:
		m.Sort(Descending)
	case ItemClearSort:
		m.ClearSort()
	case ItemClearFilter:
		m.ClearFilter()
	}
}
