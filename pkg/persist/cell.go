package persist

import (
	"encoding/json"
	"fmt"
)

// Cell is a typed view of a single key in a Store.
type Cell[T any] struct {
	store Store
	key   string
}

// NewCell binds key in store to type T.
func NewCell[T any](store Store, key string) *Cell[T] {
	return &Cell[T]{store: store, key: key}
}

// Key returns the bound key.
func (c *Cell[T]) Key() string {
	return c.key
}

// Get decodes the stored value. It returns ErrNotFound when the key is
// absent and a wrapped decode error when the value does not fit T.
func (c *Cell[T]) Get() (T, error) {
	var v T
	raw, err := c.store.Get(c.key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return v, nil
}

// GetOrDefault decodes the stored value. When the key is absent or the value
// does not decode into T, def is returned.
func (c *Cell[T]) GetOrDefault(def T) T {
	v, err := c.Get()
	if err != nil {
		return def
	}
	return v
}

// Set encodes value and stores it.
func (c *Cell[T]) Set(value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Set(c.key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

// Reset removes the stored value so the next read yields the default.
func (c *Cell[T]) Reset() error {
	return c.store.Delete(c.key)
}
