package popover

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(r Rect) func() Rect { return func() Rect { return r } }

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}

	assert.True(t, r.Contains(Point{X: 2, Y: 3}))
	assert.True(t, r.Contains(Point{X: 5, Y: 4}))
	assert.False(t, r.Contains(Point{X: 6, Y: 4}))
	assert.False(t, r.Contains(Point{X: 2, Y: 5}))
	assert.False(t, Rect{}.Contains(Point{}))
}

func TestRect_Union(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 3, Height: 1}
	b := Rect{X: 1, Y: 1, Width: 5, Height: 4}

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 6, Height: 5}, a.Union(b))
	assert.Equal(t, a, a.Union(Rect{}))
	assert.Equal(t, b, Rect{}.Union(b))
}

func TestHub_DispatchOutsideOnly(t *testing.T) {
	hub := NewHub()
	var closed []string
	Mount(hub, fixed(Rect{X: 0, Y: 0, Width: 10, Height: 10}), func() { closed = append(closed, "a") })
	Mount(hub, fixed(Rect{X: 20, Y: 0, Width: 10, Height: 10}), func() { closed = append(closed, "b") })

	n := hub.Dispatch(Point{X: 5, Y: 5})

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"b"}, closed)
}

func TestPopover_UnmountIsIdempotent(t *testing.T) {
	hub := NewHub()
	p := Mount(hub, fixed(Rect{}), func() {})
	require.Equal(t, 1, hub.Len())

	p.Unmount()
	p.Unmount()
	assert.Zero(t, hub.Len())

	var nilPop *Popover
	assert.NotPanics(t, nilPop.Unmount)
}

func TestPopover_SelfUnmountDuringDispatch(t *testing.T) {
	hub := NewHub()
	var p *Popover
	p = Mount(hub, fixed(Rect{}), func() { p.Unmount() })

	assert.NotPanics(t, func() { hub.Dispatch(Point{}) })
	assert.Zero(t, hub.Len())
}

func TestMount_NilHubNeverFires(t *testing.T) {
	fired := false
	p := Mount(nil, fixed(Rect{}), func() { fired = true })
	p.Unmount()
	assert.False(t, fired)
}

func TestWith_TearsDownOnEveryExit(t *testing.T) {
	hub := NewHub()
	region := fixed(Rect{Width: 1, Height: 1})

	err := With(hub, region, func() {}, func(*Popover) error {
		assert.Equal(t, 1, hub.Len())
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, hub.Len())

	boom := errors.New("boom")
	err = With(hub, region, func() {}, func(*Popover) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, hub.Len())

	assert.Panics(t, func() {
		_ = With(hub, region, func() {}, func(*Popover) error { panic("render failed") })
	})
	assert.Zero(t, hub.Len())
}
