// Package popover implements the outside-click-to-dismiss behaviour shared by
// column menus and dropdowns.
//
// A Hub is the single pointer-down listener registry owned by the application
// shell. Every mounted Popover registers a listener bounded to its region; a
// pointer-down that lands outside the region invokes the popover's dismiss
// callback, a pointer-down inside it is swallowed.
//
//	hub := popover.NewHub()
//	p := popover.Mount(hub, menu.Region, menu.Close)
//	defer p.Unmount()
//
//	hub.Dispatch(popover.Point{X: 3, Y: 10})
package popover

import (
	"sort"
	"sync"
)

// Point is a cell position on screen.
type Point struct {
	X int
	Y int
}

// Rect is a rectangular screen region. The zero Rect contains no points.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect covering both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1 := max(r.X+r.Width, o.X+o.Width)
	y1 := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

type listener struct {
	region    func() Rect
	onOutside func()
}

// Hub fans pointer-down events out to mounted popovers.
type Hub struct {
	mu        sync.Mutex
	next      uint64
	listeners map[uint64]listener
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{listeners: make(map[uint64]listener)}
}

// Dispatch delivers a pointer-down at p. Listeners whose region does not
// contain p are dismissed; it returns how many were.
func (h *Hub) Dispatch(p Point) int {
	h.mu.Lock()
	ids := make([]uint64, 0, len(h.listeners))
	for id := range h.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	snapshot := make([]listener, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, h.listeners[id])
	}
	h.mu.Unlock()

	// Callbacks run without the lock held so they may unmount themselves.
	dismissed := 0
	for _, l := range snapshot {
		if l.region().Contains(p) {
			continue
		}
		l.onOutside()
		dismissed++
	}
	return dismissed
}

// Len returns the number of mounted listeners.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

func (h *Hub) add(l listener) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.listeners[h.next] = l
	return h.next
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.listeners, id)
}

// Popover is a mounted outside-click listener.
type Popover struct {
	hub  *Hub
	id   uint64
	once sync.Once
}

// Mount registers onOutside to run whenever a pointer-down lands outside
// region(). region is evaluated at dispatch time so it can follow layout
// changes. A nil hub yields a Popover that never fires.
func Mount(hub *Hub, region func() Rect, onOutside func()) *Popover {
	p := &Popover{hub: hub}
	if hub == nil || region == nil || onOutside == nil {
		return p
	}
	p.id = hub.add(listener{region: region, onOutside: onOutside})
	return p
}

// Unmount removes the listener. It is safe to call more than once.
func (p *Popover) Unmount() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		if p.hub != nil && p.id != 0 {
			p.hub.remove(p.id)
		}
	})
}

// With mounts a popover for the duration of fn. The listener is removed when
// fn returns, errors or panics.
func With(hub *Hub, region func() Rect, onOutside func(), fn func(*Popover) error) error {
	p := Mount(hub, region, onOutside)
	defer p.Unmount()
	return fn(p)
}
