package tracker

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/tujuhre12/vlist/internal/vlist/debounce"
)

// DefaultIdleDelay is how long the position must stay still before the
// tracker reports that scrolling stopped.
const DefaultIdleDelay = 100 * time.Millisecond

// Direction is the direction of the latest scroll movement.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// Scrollable exposes the scroll metrics of a viewport.
type Scrollable interface {
	ScrollTop() int
	ScrollHeight() int
	ClientHeight() int
}

// ScrollEntry describes one scroll position change.
type ScrollEntry struct {
	ScrollTop int
	Direction Direction
}

// ScrollTracker turns scroll position changes of a viewport into scroll,
// scrolling-change and edge events.
type ScrollTracker struct {
	src Scrollable

	observing bool
	lastTop   int
	scrolling bool
	direction Direction
	atTop     bool
	atBottom  bool

	idle *debounce.Debouncer

	onScroll          func(ScrollEntry)
	onScrollingChange func(bool)
	onTopReached      func()
	onBottomReached   func()
}

// NewScrollTracker creates a tracker for src. Scrolling is considered
// stopped after idle without position changes.
func NewScrollTracker(src Scrollable, idle time.Duration) *ScrollTracker {
	t := &ScrollTracker{
		src:     src,
		lastTop: src.ScrollTop(),
		atTop:   true,
	}
	t.idle = debounce.New(idle, t.detectScrollEnd)
	return t
}

// OnScroll registers the scroll callback.
func (t *ScrollTracker) OnScroll(fn func(ScrollEntry)) {
	t.onScroll = fn
}

// OnScrollingChange registers the callback for scrolling start and stop.
func (t *ScrollTracker) OnScrollingChange(fn func(bool)) {
	t.onScrollingChange = fn
}

func (t *ScrollTracker) OnTopReached(fn func()) {
	t.onTopReached = fn
}

func (t *ScrollTracker) OnBottomReached(fn func()) {
	t.onBottomReached = fn
}

// IsScrolling reports whether the position changed within the idle period.
func (t *ScrollTracker) IsScrolling() bool {
	return t.scrolling
}

func (t *ScrollTracker) Direction() Direction {
	return t.direction
}

// Observe starts delivering events.
func (t *ScrollTracker) Observe() {
	t.observing = true
}

// Stop stops delivering events.
func (t *ScrollTracker) Stop() {
	t.observing = false
	t.idle.Cancel()
}

// Sync records the current position without emitting anything, e.g. after
// the viewport was reset programmatically.
func (t *ScrollTracker) Sync() {
	t.lastTop = t.src.ScrollTop()
}

// Notify reads the viewport position and emits events if it moved. The
// returned command waits for the idle period.
func (t *ScrollTracker) Notify() tea.Cmd {
	if !t.observing {
		return nil
	}
	top := t.src.ScrollTop()
	if top == t.lastTop {
		return nil
	}
	if top > t.lastTop {
		t.direction = DirectionDown
	} else {
		t.direction = DirectionUp
	}
	t.lastTop = top

	if !t.scrolling {
		t.scrolling = true
		if t.onScrollingChange != nil {
			t.onScrollingChange(true)
		}
	}
	if t.onScroll != nil {
		t.onScroll(ScrollEntry{ScrollTop: top, Direction: t.direction})
	}
	t.detectEdges(top)
	return t.idle.Trigger()
}

// Handle processes the tracker's own idle messages.
func (t *ScrollTracker) Handle(msg tea.Msg) (bool, tea.Cmd) {
	return t.idle.Handle(msg)
}

// Dispose stops the tracker and drops every callback.
func (t *ScrollTracker) Dispose() {
	t.Stop()
	t.idle.Dispose()
	t.onScroll = nil
	t.onScrollingChange = nil
	t.onTopReached = nil
	t.onBottomReached = nil
}

func (t *ScrollTracker) detectEdges(top int) {
	atTop := top <= 0
	atBottom := top+t.src.ClientHeight() >= t.src.ScrollHeight()
	if atTop && !t.atTop && t.onTopReached != nil {
		t.onTopReached()
	}
	if atBottom && !t.atBottom && t.onBottomReached != nil {
		t.onBottomReached()
	}
	t.atTop = atTop
	t.atBottom = atBottom
}

func (t *ScrollTracker) detectScrollEnd() tea.Cmd {
	if !t.scrolling {
		return nil
	}
	t.scrolling = false
	t.direction = DirectionNone
	if t.onScrollingChange != nil {
		t.onScrollingChange(false)
	}
	return nil
}
