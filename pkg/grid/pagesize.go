package grid

import "fmt"

// PageSizeOption is one entry of the page-size dropdown.
type PageSizeOption struct {
	Value int
	Label string
}

// PageSizeSelector is the closed single-select dropdown for rows-per-page.
type PageSizeSelector struct {
	dismissible
	options  []PageSizeOption
	onChange func(int)
}

// NewPageSizeSelector builds a selector over sizes. onChange receives the
// chosen size.
func NewPageSizeSelector(sizes []int, onChange func(int)) *PageSizeSelector {
	opts := make([]PageSizeOption, 0, len(sizes))
	for _, n := range sizes {
		opts = append(opts, PageSizeOption{Value: n, Label: fmt.Sprintf("%d per page", n)})
	}
	return &PageSizeSelector{options: opts, onChange: onChange}
}

// Options returns the dropdown entries.
func (s *PageSizeSelector) Options() []PageSizeOption {
	return s.options
}

// Label is the text of the selected option, or "" when value is not offered.
func (s *PageSizeSelector) Label(value int) string {
	for _, o := range s.options {
		if o.Value == value {
			return o.Label
		}
	}
	return ""
}

// Select reports value to the change callback and closes the dropdown.
func (s *PageSizeSelector) Select(value int) {
	if s.onChange != nil {
		s.onChange(value)
	}
	s.Close()
}
