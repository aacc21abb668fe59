package grid

import "github.com/getmockd/roster/pkg/popover"

// dismissible is the open/closed state shared by the grid's popovers.
type dismissible struct {
	open bool
	pop  *popover.Popover
}

// Mount registers the outside-click listener on hub. region must cover the
// anchor button and, while open, the popover body.
func (d *dismissible) Mount(hub *popover.Hub, region func() popover.Rect) {
	d.Unmount()
	d.pop = popover.Mount(hub, region, d.Close)
}

// Unmount removes the outside-click listener.
func (d *dismissible) Unmount() {
	d.pop.Unmount()
	d.pop = nil
}

// IsOpen reports whether the popover is showing.
func (d *dismissible) IsOpen() bool {
	return d.open
}

// Toggle flips the popover open or closed.
func (d *dismissible) Toggle() {
	d.open = !d.open
}

// Close hides the popover.
func (d *dismissible) Close() {
	d.open = false
}
