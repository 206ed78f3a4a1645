// Package debounce coalesces bursts of calls into one trailing invocation on
// the Bubble Tea message loop.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// minDelay is used for zero delays so the callback still runs after the
// current update returns.
const minDelay = time.Millisecond

var lastID int64

func nextID() int64 {
	return atomic.AddInt64(&lastID, 1)
}

// FireMsg is delivered when a scheduled invocation is due. Stale messages,
// superseded by a later Trigger, are ignored.
type FireMsg struct {
	id  int64
	gen uint64
}

// Debouncer runs fn once delay has elapsed without another Trigger.
type Debouncer struct {
	id       int64
	delay    time.Duration
	fn       func() tea.Cmd
	gen      uint64
	pending  bool
	disposed bool
}

// New creates a debouncer for fn.
func New(delay time.Duration, fn func() tea.Cmd) *Debouncer {
	return &Debouncer{
		id:    nextID(),
		delay: delay,
		fn:    fn,
	}
}

// Trigger (re)starts the idle period and returns the command that waits for
// it.
func (d *Debouncer) Trigger() tea.Cmd {
	if d.disposed {
		return nil
	}
	d.gen++
	d.pending = true
	msg := FireMsg{id: d.id, gen: d.gen}
	return tea.Tick(max(d.delay, minDelay), func(time.Time) tea.Msg {
		return msg
	})
}

// Cancel drops the pending invocation, if any.
func (d *Debouncer) Cancel() {
	d.gen++
	d.pending = false
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Dispose cancels and permanently disables the debouncer.
func (d *Debouncer) Dispose() {
	d.Cancel()
	d.disposed = true
}

// Handle runs fn if msg is the latest scheduled invocation of this
// debouncer. It reports whether msg belonged to this debouncer at all.
func (d *Debouncer) Handle(msg tea.Msg) (bool, tea.Cmd) {
	fire, ok := msg.(FireMsg)
	if !ok || fire.id != d.id {
		return false, nil
	}
	if d.disposed || !d.pending || fire.gen != d.gen {
		return true, nil
	}
	d.pending = false
	if d.fn == nil {
		return true, nil
	}
	return true, d.fn()
}
