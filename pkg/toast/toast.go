// Package toast is the application's notification channel.
//
// A Bus is created once by the application shell and handed to whatever
// needs to notify the user. Subscribers receive every toast on a buffered
// channel; a Tray collects delivered toasts and expires them after
// DismissAfter.
package toast

import (
	"sync"
	"time"
)

// DismissAfter is how long a toast stays visible.
const DismissAfter = 4 * time.Second

// subscriberBuffer bounds each subscriber channel. Toasts are dropped for a
// subscriber that falls this far behind.
const subscriberBuffer = 32

// Kind is the severity of a toast.
type Kind string

// Toast kinds.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Variant is the visual treatment of a toast.
type Variant string

// Toast variants.
const (
	VariantFilled      Variant = "filled"
	VariantOutlined    Variant = "outlined"
	VariantLightFilled Variant = "light-filled"
)

// Toast is one delivered notification.
type Toast struct {
	ID      uint64
	Message string
	Kind    Kind
	Variant Variant
	At      time.Time
}

// Subscriber receives toasts published on a Bus.
type Subscriber <-chan Toast

type subscriber struct {
	ch   chan Toast
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// Bus fans toasts out to subscribers. It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	seq    uint64
	subs   map[*subscriber]struct{}
	closed bool
	now    func() time.Time
}

// NewBus creates an open Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*subscriber]struct{}), now: time.Now}
}

// Subscribe registers a new subscriber. The returned func removes it and
// closes its channel; calling it more than once is harmless. Subscribing to a
// closed bus yields an already closed channel.
func (b *Bus) Subscribe() (Subscriber, func()) {
	s := &subscriber{ch: make(chan Toast, subscriberBuffer)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		s.close()
		return s.ch, func() {}
	}
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		delete(b.subs, s)
		b.mu.Unlock()
		s.close()
	}
	return s.ch, unsubscribe
}

// Show publishes a toast. An empty variant means VariantFilled. It returns
// the delivered toast; publishing on a closed bus returns a zero ID.
func (b *Bus) Show(message string, kind Kind, variant Variant) Toast {
	if variant == "" {
		variant = VariantFilled
	}
	t := Toast{Message: message, Kind: kind, Variant: variant}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return t
	}
	b.seq++
	t.ID = b.seq
	t.At = b.now()

	for s := range b.subs {
		select {
		case s.ch <- t:
		default:
			// Drop if subscriber is slow
		}
	}
	return t
}

// Success publishes a success toast.
func (b *Bus) Success(message string, variant Variant) Toast {
	return b.Show(message, KindSuccess, variant)
}

// Error publishes an error toast.
func (b *Bus) Error(message string) Toast {
	return b.Show(message, KindError, VariantFilled)
}

// Info publishes an info toast.
func (b *Bus) Info(message string) Toast {
	return b.Show(message, KindInfo, VariantFilled)
}

// Warning publishes a warning toast.
func (b *Bus) Warning(message string) Toast {
	return b.Show(message, KindWarning, VariantFilled)
}

// Close detaches every subscriber and closes their channels. Later Show
// calls are no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.close()
		delete(b.subs, s)
	}
}
