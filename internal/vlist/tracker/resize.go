// Package tracker observes the geometry of tracked surfaces and the scroll
// position of a viewport, and reports changes in batches.
package tracker

import (
	"errors"
	"sync/atomic"
)

// ErrNilHandler is returned when a tracker is built without a handler.
var ErrNilHandler = errors.New("tracker: handler is required")

// SurfaceID is the stable handle of a tracked surface.
type SurfaceID uint64

var lastSurfaceID uint64

// NewSurfaceID returns a process-unique surface handle.
func NewSurfaceID() SurfaceID {
	return SurfaceID(atomic.AddUint64(&lastSurfaceID, 1))
}

// Measurable is anything with a layout height.
type Measurable interface {
	Height() int
}

// Hideable is implemented by surfaces that can be laid out without a box.
// Hidden surfaces are not reported.
type Hideable interface {
	Hidden() bool
}

// ResizeEntry is the new height of one tracked surface.
type ResizeEntry struct {
	Target SurfaceID
	Height int
}

// ResizeHandler receives a batch of resize entries.
type ResizeHandler func([]ResizeEntry)

type observation struct {
	target   Measurable
	height   int
	reported bool
}

// ResizeTracker tracks height changes of a set of surfaces.
type ResizeTracker struct {
	handler  ResizeHandler
	observed map[SurfaceID]*observation
	// order keeps delivery deterministic.
	order   []SurfaceID
	stopped bool
}

// NewResizeTracker creates a tracker that delivers changes to handler.
func NewResizeTracker(handler ResizeHandler) (*ResizeTracker, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	return &ResizeTracker{
		handler:  handler,
		observed: make(map[SurfaceID]*observation),
	}, nil
}

// Observe starts tracking target. The first Check after Observe always
// reports the target's height.
func (t *ResizeTracker) Observe(id SurfaceID, target Measurable) {
	if t.stopped {
		return
	}
	if _, ok := t.observed[id]; !ok {
		t.order = append(t.order, id)
	}
	t.observed[id] = &observation{target: target}
}

// Unobserve stops tracking the surface.
func (t *ResizeTracker) Unobserve(id SurfaceID) {
	if _, ok := t.observed[id]; !ok {
		return
	}
	delete(t.observed, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Observed reports whether the surface is tracked.
func (t *ResizeTracker) Observed(id SurfaceID) bool {
	_, ok := t.observed[id]
	return ok
}

// Len returns the number of tracked surfaces.
func (t *ResizeTracker) Len() int {
	return len(t.observed)
}

// Check measures every tracked surface and delivers the changed ones in one
// batch. It reports whether the handler was called.
func (t *ResizeTracker) Check() bool {
	if t.stopped || len(t.observed) == 0 {
		return false
	}
	var entries []ResizeEntry
	for _, id := range t.order {
		obs := t.observed[id]
		if h, ok := obs.target.(Hideable); ok && h.Hidden() {
			continue
		}
		height := obs.target.Height()
		if obs.reported && height == obs.height {
			continue
		}
		obs.height = height
		obs.reported = true
		entries = append(entries, ResizeEntry{Target: id, Height: height})
	}
	if len(entries) == 0 {
		return false
	}
	t.handler(entries)
	return true
}

// Stop unobserves every surface. The tracker may observe again afterwards.
func (t *ResizeTracker) Stop() {
	t.observed = make(map[SurfaceID]*observation)
	t.order = nil
}

// Dispose stops the tracker for good.
func (t *ResizeTracker) Dispose() {
	t.Stop()
	t.stopped = true
}
