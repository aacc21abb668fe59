package grid

// Intents are the user intents a grid emits towards the owner of the
// filter/sort state. Nil callbacks are ignored.
type Intents struct {
	OnSort         func(key string, dir Direction)
	OnClearSort    func()
	OnFilterChange func(key, value string)
}

func (in Intents) sort(key string, dir Direction) {
	if in.OnSort != nil {
		in.OnSort(key, dir)
	}
}

func (in Intents) clearSort() {
	if in.OnClearSort != nil {
		in.OnClearSort()
	}
}

func (in Intents) filterChange(key, value string) {
	if in.OnFilterChange != nil {
		in.OnFilterChange(key, value)
	}
}

// Action is a per-row action button.
type Action string

// Row actions.
const (
	ActionEdit   Action = "Edit"
	ActionDelete Action = "Delete"
)

// Handlers carries the grid intents plus the optional row actions.
type Handlers[R Record] struct {
	Intents
	OnEdit   func(R)
	OnDelete func(R)
}

// ShowActions reports whether the Actions column is rendered.
func (h Handlers[R]) ShowActions() bool {
	return h.OnEdit != nil || h.OnDelete != nil
}

// Actions lists one button per supplied handler, in display order.
func (h Handlers[R]) Actions() []Action {
	var out []Action
	if h.OnEdit != nil {
		out = append(out, ActionEdit)
	}
	if h.OnDelete != nil {
		out = append(out, ActionDelete)
	}
	return out
}

// Invoke runs the handler for a with the full record. It reports false when
// no such handler was supplied.
func (h Handlers[R]) Invoke(a Action, r R) bool {
	switch {
	case a == ActionEdit && h.OnEdit != nil:
		h.OnEdit(r)
	case a == ActionDelete && h.OnDelete != nil:
		h.OnDelete(r)
	default:
		return false
	}
	return true
}
