// Package scroll drives one scroll request at a time toward a target
// position, either immediately or as a frame-by-frame animation.
package scroll

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// Target is the viewport being scrolled. SetScrollTop clamps the position.
type Target interface {
	ScrollTop() int
	SetScrollTop(int)
	ScrollHeight() int
	ClientHeight() int
}

// FrameMsg advances an in-flight animation.
type FrameMsg struct {
	id  int64
	seq uint64
}

var lastID int64

type animation struct {
	seq    uint64
	to     int
	step   int
	frames int
	pos    float64
	delta  float64
}

// Manager owns the single in-flight scroll of a viewport.
type Manager struct {
	id     int64
	target Target
	cfg    Config

	anim *animation
	seq  uint64

	requested    int
	hasRequested bool

	onComplete func()
	disposed   bool
}

// NewManager creates a manager scrolling target.
func NewManager(target Target, cfg Config) *Manager {
	if cfg.Frame <= 0 {
		cfg.Frame = DefaultConfig().Frame
	}
	return &Manager{
		id:     atomic.AddInt64(&lastID, 1),
		target: target,
		cfg:    cfg,
	}
}

// OnComplete registers the callback run once a scroll settles.
func (m *Manager) OnComplete(fn func()) {
	m.onComplete = fn
}

// ScrollTo scrolls to position. A request for the position already being
// scrolled to is ignored, as is a request for the current position while
// idle. A request for the current position during an animation stops the
// animation there. Any other request cancels the in-flight one.
func (m *Manager) ScrollTo(position int, opts Options) tea.Cmd {
	if m.disposed {
		return nil
	}
	if m.hasRequested && position == m.requested {
		return nil
	}
	from := m.target.ScrollTop()
	if position == from {
		if m.anim != nil {
			m.Cancel()
			slog.Debug("Scroll stopped", "position", from)
			if m.onComplete != nil {
				m.onComplete()
			}
		}
		return nil
	}
	m.Cancel()
	m.requested = position
	m.hasRequested = true

	frames := 1
	if opts.Smooth && m.cfg.Duration > 0 && abs(position-from) < m.cfg.SmoothThreshold {
		frames = max(1, int(math.Round(float64(m.cfg.Duration)/float64(m.cfg.Frame))))
	}
	m.seq++
	m.anim = &animation{
		seq:    m.seq,
		to:     position,
		step:   1,
		frames: frames,
		pos:    float64(from),
		delta:  float64(position-from) / float64(frames),
	}
	slog.Debug("Scroll started", "from", from, "to", position, "frames", frames)
	return m.advance()
}

// ScrollToTop scrolls to the first row.
func (m *Manager) ScrollToTop(opts Options) tea.Cmd {
	return m.ScrollTo(0, opts)
}

// ScrollToBottom scrolls until the end of the content is visible.
func (m *Manager) ScrollToBottom(opts Options) tea.Cmd {
	return m.ScrollTo(max(0, m.target.ScrollHeight()-m.target.ClientHeight()), opts)
}

// Cancel stops the in-flight scroll without completing it.
func (m *Manager) Cancel() {
	if m.anim != nil {
		m.anim = nil
		m.seq++
	}
	m.hasRequested = false
}

// Target returns the position of the outstanding request.
func (m *Manager) Target() (int, bool) {
	return m.requested, m.hasRequested
}

// Busy reports whether an animation is in flight.
func (m *Manager) Busy() bool {
	return m.anim != nil
}

// Handle advances the animation this frame belongs to.
func (m *Manager) Handle(msg tea.Msg) (bool, tea.Cmd) {
	frame, ok := msg.(FrameMsg)
	if !ok || frame.id != m.id {
		return false, nil
	}
	if m.disposed || m.anim == nil || frame.seq != m.anim.seq {
		return true, nil
	}
	return true, m.advance()
}

// Dispose cancels the in-flight scroll and ignores every later request.
func (m *Manager) Dispose() {
	m.Cancel()
	m.onComplete = nil
	m.disposed = true
}

func (m *Manager) advance() tea.Cmd {
	a := m.anim
	if a.step < a.frames {
		a.pos += a.delta
		a.step++
		m.target.SetScrollTop(int(math.Round(a.pos)))
		msg := FrameMsg{id: m.id, seq: a.seq}
		return tea.Tick(m.cfg.Frame, func(time.Time) tea.Msg {
			return msg
		})
	}
	m.target.SetScrollTop(a.to)
	m.anim = nil
	m.hasRequested = false
	slog.Debug("Scroll completed", "position", m.target.ScrollTop())
	if m.onComplete != nil {
		m.onComplete()
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
