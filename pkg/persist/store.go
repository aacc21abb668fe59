package persist

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Store.Get for absent keys.
var ErrNotFound = errors.New("persist: key not found")

// Store holds raw JSON values by key.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (json.RawMessage, error)

	// Set stores value under key. Implementations persist synchronously.
	Set(key string, value json.RawMessage) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys returns the stored keys in sorted order.
	Keys() []string
}

// StoreError reports a failure reading or writing a backing file.
type StoreError struct {
	Path string
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("persist: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
