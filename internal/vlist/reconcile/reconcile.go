// Package reconcile keeps the mounted window of a list in step with its
// scroll position. Only the items intersecting the render range are
// mounted; the rest of the content is represented by a padding pair above
// and below the window.
package reconcile

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tujuhre12/vlist/internal/vlist/geom"
	"github.com/tujuhre12/vlist/internal/vlist/ledger"
	"github.com/tujuhre12/vlist/internal/vlist/tracker"
)

var (
	ErrNilLedger   = errors.New("reconcile: ledger is required")
	ErrNilViewport = errors.New("reconcile: viewport is required")
	ErrNilRenderer = errors.New("reconcile: renderer is required")
)

// Viewport is the scroll container the window is laid out in.
type Viewport interface {
	ScrollTop() int
	Height() int
}

// Surface is a mounted item.
type Surface interface {
	Height() int
}

// Renderer builds the surface of one record.
type Renderer[T any] func(record T, key string, index int) Surface

// Mounted is one entry of the mounted window.
type Mounted[T any] struct {
	ID      tracker.SurfaceID
	Index   int
	Key     string
	Surface Surface
}

// Config holds the buffer zones around the viewport, in rows.
type Config struct {
	LeadingBuffer  int
	TrailingBuffer int
}

// Reconciler owns the mounted window and the padding pair.
type Reconciler[T any] struct {
	cfg      Config
	ledger   *ledger.Ledger[T]
	viewport Viewport
	header   tracker.Measurable
	render   Renderer[T]

	renderRange geom.Range
	window      []Mounted[T]
	byID        map[tracker.SurfaceID]int

	indexRange geom.IndexRange
	hasRange   bool

	paddingTop    int
	paddingBottom int

	viewportID tracker.SurfaceID
	headerID   tracker.SurfaceID
	containers *tracker.ResizeTracker
	items      *tracker.ResizeTracker

	onItemsResize func(delta int)
	onError       func(error)
	disposed      bool
}

// New creates a reconciler. header may be nil when the list has none.
func New[T any](l *ledger.Ledger[T], cfg Config, viewport Viewport, header tracker.Measurable, render Renderer[T]) (*Reconciler[T], error) {
	switch {
	case l == nil:
		return nil, ErrNilLedger
	case viewport == nil:
		return nil, ErrNilViewport
	case render == nil:
		return nil, ErrNilRenderer
	}
	r := &Reconciler[T]{
		cfg:         cfg,
		ledger:      l,
		viewport:    viewport,
		header:      header,
		render:      render,
		renderRange: geom.RenderRange(cfg.LeadingBuffer, cfg.TrailingBuffer, viewport.Height()),
		byID:        make(map[tracker.SurfaceID]int),
		viewportID:  tracker.NewSurfaceID(),
		headerID:    tracker.NewSurfaceID(),
	}
	var err error
	if r.containers, err = tracker.NewResizeTracker(r.handleContainersResize); err != nil {
		return nil, err
	}
	if r.items, err = tracker.NewResizeTracker(r.handleItemsResize); err != nil {
		return nil, err
	}
	r.containers.Observe(r.viewportID, viewport)
	if header != nil {
		r.containers.Observe(r.headerID, header)
		l.SetOrigin(header.Height())
	}
	return r, nil
}

// OnItemsResize registers the callback receiving the summed height delta of
// every batch of mounted item resizes.
func (r *Reconciler[T]) OnItemsResize(fn func(delta int)) {
	r.onItemsResize = fn
}

// OnError registers the callback receiving errors raised while reconciling
// from a resize notification.
func (r *Reconciler[T]) OnError(fn func(error)) {
	r.onError = fn
}

// Reconcile brings the mounted window in line with the render range shifted
// by scrollTop.
func (r *Reconciler[T]) Reconcile(scrollTop int) error {
	if r.disposed || r.ledger.Len() == 0 {
		return nil
	}
	rng := r.renderRange.Offset(scrollTop)

	if len(r.window) > 0 {
		first, last := r.window[0], r.window[len(r.window)-1]
		top := r.surfaceTop(0)
		bottom := top + r.windowHeight()
		if !rng.Intersects(top, bottom) {
			// The window scrolled out of range entirely. Walking toward the
			// new range one item at a time would mount everything in between.
			slog.Debug("Window out of range, remounting", "window", r.indexRange, "range", rng)
			r.unmount(0, len(r.window))
		} else {
			prepend := r.collectPrepend(first.Index, top, rng)
			appendIdx := r.collectAppend(last.Index, bottom, rng)

			var lead, trail int
			if len(prepend) == 0 {
				lead = r.leadingEvictions(rng)
			}
			if len(appendIdx) == 0 {
				trail = r.trailingEvictions(rng, lead)
			}
			if trail > 0 {
				r.unmount(len(r.window)-trail, len(r.window))
			}
			if lead > 0 {
				r.unmount(0, lead)
			}
			if err := r.mountTail(appendIdx); err != nil {
				return err
			}
			if err := r.mountHead(prepend); err != nil {
				return err
			}
			r.updateRange()
			return nil
		}
	}

	var indices []int
	if err := r.ledger.IterateByRange(rng, func(item *ledger.ItemMeta) bool {
		indices = append(indices, item.Index)
		return true
	}); err != nil {
		return err
	}
	if err := r.mountTail(indices); err != nil {
		return err
	}
	r.updateRange()
	return nil
}

// Reset unmounts the window and clears the paddings. The render range is
// kept since it only depends on the viewport.
func (r *Reconciler[T]) Reset() {
	r.unmount(0, len(r.window))
	r.byID = make(map[tracker.SurfaceID]int)
	r.hasRange = false
	r.indexRange = geom.IndexRange{}
	r.paddingTop, r.paddingBottom = 0, 0
}

// CheckLayout measures the containers, then the mounted items, and
// reconciles on any change. It reports whether anything changed.
func (r *Reconciler[T]) CheckLayout() bool {
	if r.disposed {
		return false
	}
	changed := r.containers.Check()
	if r.items.Check() {
		changed = true
	}
	return changed
}

// UpdateItemHeight records a height for an item outside the mounted window
// and keeps the paddings consistent with it. Heights of mounted items are
// measured from their surfaces instead.
func (r *Reconciler[T]) UpdateItemHeight(index, height int) (int, error) {
	delta, err := r.ledger.UpdateItemHeight(index, height)
	if err != nil || !r.hasRange {
		return delta, err
	}
	switch {
	case index < r.indexRange.First:
		r.paddingTop += delta
	case index > r.indexRange.Last:
		r.paddingBottom += delta
	}
	return delta, nil
}

// Paddings returns the space above and below the mounted window.
func (r *Reconciler[T]) Paddings() (top, bottom int) {
	return r.paddingTop, r.paddingBottom
}

// Window returns the mounted items in index order.
func (r *Reconciler[T]) Window() []Mounted[T] {
	return r.window
}

// RenderedIndexRange returns the indices of the mounted window.
func (r *Reconciler[T]) RenderedIndexRange() (geom.IndexRange, bool) {
	return r.indexRange, r.hasRange
}

// RenderRange returns the render range relative to the viewport top.
func (r *Reconciler[T]) RenderRange() geom.Range {
	return r.renderRange
}

// ContentHeight returns the height of the header, paddings and window.
func (r *Reconciler[T]) ContentHeight() int {
	return r.ledger.Origin() + r.paddingTop + r.windowHeight() + r.paddingBottom
}

// SurfaceTop returns the content offset of the i-th mounted surface.
func (r *Reconciler[T]) SurfaceTop(i int) int {
	return r.surfaceTop(i)
}

// Dispose unmounts everything and stops both trackers.
func (r *Reconciler[T]) Dispose() {
	if r.disposed {
		return
	}
	r.Reset()
	r.containers.Dispose()
	r.items.Dispose()
	r.onItemsResize = nil
	r.onError = nil
	r.disposed = true
}

func (r *Reconciler[T]) handleContainersResize(entries []tracker.ResizeEntry) {
	changed := false
	for _, e := range entries {
		switch e.Target {
		case r.viewportID:
			next := geom.RenderRange(r.cfg.LeadingBuffer, r.cfg.TrailingBuffer, e.Height)
			if !next.Equal(r.renderRange) {
				slog.Debug("Render range changed", "from", r.renderRange, "to", next)
				r.renderRange = next
				changed = true
			}
		case r.headerID:
			if e.Height != r.ledger.Origin() {
				r.ledger.SetOrigin(e.Height)
				changed = true
			}
		}
	}
	if changed {
		r.report(r.Reconcile(r.viewport.ScrollTop()))
	}
}

func (r *Reconciler[T]) handleItemsResize(entries []tracker.ResizeEntry) {
	delta := 0
	for _, e := range entries {
		index, ok := r.byID[e.Target]
		if !ok {
			continue
		}
		d, err := r.ledger.UpdateItemHeight(index, e.Height)
		if err != nil {
			r.report(err)
			continue
		}
		delta += d
	}
	r.report(r.Reconcile(r.viewport.ScrollTop()))
	if delta != 0 {
		slog.Debug("Items resized", "count", len(entries), "delta", delta)
	}
	if r.onItemsResize != nil {
		r.onItemsResize(delta)
	}
}

func (r *Reconciler[T]) report(err error) {
	if err == nil {
		return
	}
	slog.Error("Reconcile failed", "error", err)
	if r.onError != nil {
		r.onError(fmt.Errorf("reconcile: %w", err))
	}
}

// collectPrepend walks backward from first while the candidate item still
// reaches below the range top. Indices are returned in ascending order.
func (r *Reconciler[T]) collectPrepend(first, top int, rng geom.Range) []int {
	var indices []int
	bottom := top
	for i := first - 1; i >= 0 && bottom > rng.Top; i-- {
		_, height := r.ledger.ItemOffset(i)
		indices = append(indices, i)
		bottom -= height
	}
	for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices
}

// collectAppend walks forward from last while the candidate item still
// starts above the range bottom.
func (r *Reconciler[T]) collectAppend(last, bottom int, rng geom.Range) []int {
	var indices []int
	top := bottom
	for i := last + 1; i < r.ledger.Len() && top < rng.Bottom; i++ {
		_, height := r.ledger.ItemOffset(i)
		indices = append(indices, i)
		top += height
	}
	return indices
}

// leadingEvictions counts the mounted surfaces, from the first one, that
// lie entirely above the range.
func (r *Reconciler[T]) leadingEvictions(rng geom.Range) int {
	n := 0
	top := r.surfaceTop(0)
	for _, m := range r.window {
		bottom := top + m.Surface.Height()
		if bottom > rng.Top {
			break
		}
		top = bottom
		n++
	}
	return n
}

// trailingEvictions counts the mounted surfaces, from the last one, that lie
// entirely below the range. The first skip surfaces are not considered.
func (r *Reconciler[T]) trailingEvictions(rng geom.Range, skip int) int {
	n := 0
	bottom := r.surfaceTop(0) + r.windowHeight()
	for i := len(r.window) - 1; i >= skip; i-- {
		top := bottom - r.window[i].Surface.Height()
		if top < rng.Bottom {
			break
		}
		bottom = top
		n++
	}
	return n
}

func (r *Reconciler[T]) mountTail(indices []int) error {
	mounted, err := r.mountAll(indices)
	if err != nil {
		return err
	}
	r.window = append(r.window, mounted...)
	r.reindex()
	return nil
}

func (r *Reconciler[T]) mountHead(indices []int) error {
	mounted, err := r.mountAll(indices)
	if err != nil {
		return err
	}
	r.window = append(mounted, r.window...)
	r.reindex()
	return nil
}

func (r *Reconciler[T]) mountAll(indices []int) ([]Mounted[T], error) {
	if len(indices) == 0 {
		return nil, nil
	}
	mounted := make([]Mounted[T], 0, len(indices))
	for _, index := range indices {
		item, err := r.ledger.Item(index)
		if err != nil {
			return nil, err
		}
		record, err := r.ledger.Record(index)
		if err != nil {
			return nil, err
		}
		m := Mounted[T]{
			ID:      tracker.NewSurfaceID(),
			Index:   index,
			Key:     item.Key,
			Surface: r.render(record, item.Key, index),
		}
		mounted = append(mounted, m)
	}
	for _, m := range mounted {
		r.items.Observe(m.ID, m.Surface)
	}
	return mounted, nil
}

func (r *Reconciler[T]) unmount(from, to int) {
	if from >= to {
		return
	}
	for _, m := range r.window[from:to] {
		r.items.Unobserve(m.ID)
		delete(r.byID, m.ID)
	}
	r.window = append(r.window[:from:from], r.window[to:]...)
	r.reindex()
}

func (r *Reconciler[T]) reindex() {
	for _, m := range r.window {
		r.byID[m.ID] = m.Index
	}
}

// updateRange recomputes the rendered index range and the paddings.
func (r *Reconciler[T]) updateRange() {
	prev, hadPrev := r.indexRange, r.hasRange
	if len(r.window) == 0 {
		r.indexRange, r.hasRange = geom.IndexRange{}, false
		r.paddingTop, r.paddingBottom = 0, 0
		return
	}
	next := geom.IndexRange{First: r.window[0].Index, Last: r.window[len(r.window)-1].Index}
	r.indexRange, r.hasRange = next, true

	n := r.ledger.Len()
	switch {
	case !hadPrev:
		r.paddingTop = r.ledger.SumHeights(0, next.First)
		r.paddingBottom = r.ledger.SumHeights(next.Last+1, n)
	case !prev.Equal(next):
		switch {
		case next.First > prev.First:
			r.paddingTop += r.ledger.SumHeights(prev.First, next.First)
		case next.First < prev.First:
			r.paddingTop -= r.ledger.SumHeights(next.First, prev.First)
		}
		switch {
		case next.Last < prev.Last:
			r.paddingBottom += r.ledger.SumHeights(next.Last+1, prev.Last+1)
		case next.Last > prev.Last:
			r.paddingBottom -= r.ledger.SumHeights(prev.Last+1, next.Last+1)
		}
	}
	slog.Debug("Reconciled",
		"window", next,
		"paddingTop", r.paddingTop,
		"paddingBottom", r.paddingBottom,
	)
}

func (r *Reconciler[T]) surfaceTop(i int) int {
	top := r.ledger.Origin() + r.paddingTop
	for _, m := range r.window[:i] {
		top += m.Surface.Height()
	}
	return top
}

func (r *Reconciler[T]) windowHeight() int {
	h := 0
	for _, m := range r.window {
		h += m.Surface.Height()
	}
	return h
}
