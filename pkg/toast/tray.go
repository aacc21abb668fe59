package toast

import (
	"slices"
	"time"
)

// Tray holds the toasts currently on screen.
type Tray struct {
	ttl    time.Duration
	toasts []Toast
}

// NewTray returns a tray that keeps toasts for ttl. A non-positive ttl means
// DismissAfter.
func NewTray(ttl time.Duration) *Tray {
	if ttl <= 0 {
		ttl = DismissAfter
	}
	return &Tray{ttl: ttl}
}

// TTL is how long a toast stays in the tray.
func (t *Tray) TTL() time.Duration {
	return t.ttl
}

// Add puts a toast on the tray. Toasts already present are ignored.
func (t *Tray) Add(msg Toast) {
	if slices.ContainsFunc(t.toasts, func(o Toast) bool { return o.ID == msg.ID }) {
		return
	}
	t.toasts = append(t.toasts, msg)
}

// Dismiss removes the toast with id.
func (t *Tray) Dismiss(id uint64) {
	t.toasts = slices.DeleteFunc(t.toasts, func(o Toast) bool { return o.ID == id })
}

// Expire drops every toast older than the TTL at now and reports how many
// were dropped.
func (t *Tray) Expire(now time.Time) int {
	before := len(t.toasts)
	t.toasts = slices.DeleteFunc(t.toasts, func(o Toast) bool {
		return !now.Before(o.At.Add(t.ttl))
	})
	return before - len(t.toasts)
}

// Active returns the visible toasts, oldest first.
func (t *Tray) Active() []Toast {
	return slices.Clone(t.toasts)
}

// Len returns the number of visible toasts.
func (t *Tray) Len() int {
	return len(t.toasts)
}
