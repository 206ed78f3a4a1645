package list

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/tujuhre12/vlist/internal/config"
	"github.com/tujuhre12/vlist/internal/vlist/debounce"
	"github.com/tujuhre12/vlist/internal/vlist/ledger"
	"github.com/tujuhre12/vlist/internal/vlist/reconcile"
	"github.com/tujuhre12/vlist/internal/vlist/scroll"
	"github.com/tujuhre12/vlist/internal/vlist/tracker"
)

const (
	ViewportDefaultScrollSize = 2

	// maxLayoutPasses bounds the measure and reconcile rounds of one update.
	maxLayoutPasses = 32
)

var ErrNilRenderFunc = errors.New("render func is required")

// RenderFunc renders one record at the given width. The number of lines of
// the result is the record's height.
type RenderFunc[T any] func(record T, key string, index, width int) string

type pendingKind int

const (
	pendingIndex pendingKind = iota
	pendingBottom
)

// pendingScroll is a scroll command that is issued again whenever mounted
// items change height before the scroll has settled.
type pendingScroll struct {
	kind  pendingKind
	index int
	opts  scroll.Options
}

type options struct {
	width, height int
	cfg           config.Options
	header        func() string
	footer        func() string
	empty         func() string
	keyMap        KeyMap
	focused       bool
	enableMouse   bool
}

type Option func(*options)

// WithSize sets the size of the list.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithConfig sets the engine options.
func WithConfig(cfg config.Options) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithHeader renders a header above the items. It scrolls with them.
func WithHeader(render func() string) Option {
	return func(o *options) {
		o.header = render
	}
}

// WithFooter renders a footer below the items. It scrolls with them.
func WithFooter(render func() string) Option {
	return func(o *options) {
		o.footer = render
	}
}

// WithEmpty renders the placeholder shown when there are no records.
func WithEmpty(render func() string) Option {
	return func(o *options) {
		o.empty = render
	}
}

func WithKeyMap(keyMap KeyMap) Option {
	return func(o *options) {
		o.keyMap = keyMap
	}
}

func WithFocus(focus bool) Option {
	return func(o *options) {
		o.focused = focus
	}
}

func WithEnableMouse() Option {
	return func(o *options) {
		o.enableMouse = true
	}
}

// Model is a windowed list: only the records around the viewport are
// rendered, the rest is accounted for by padding.
type Model[T any] struct {
	*options

	render RenderFunc[T]

	ledger   *ledger.Ledger[T]
	viewport *viewport
	header   *slot
	footer   *slot
	empty    *slot

	rec      *reconcile.Reconciler[T]
	tracker  *tracker.ScrollTracker
	scroller *scroll.Manager
	// settle clears the pending scroll once scrolling has stopped for a
	// full scroll duration.
	settle *debounce.Debouncer

	pending *pendingScroll

	events []tea.Msg
	cmds   []tea.Cmd

	disposed bool
}

// New creates a list. keyFn must return a unique key per record.
func New[T any](keyFn ledger.KeyFunc[T], render RenderFunc[T], opts ...Option) (*Model[T], error) {
	o := &options{
		cfg:     config.Defaults(),
		keyMap:  DefaultKeyMap(),
		focused: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if render == nil {
		return nil, ErrNilRenderFunc
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	o.enableMouse = o.enableMouse || o.cfg.Mouse
	o.keyMap.SetEnabled(o.focused)

	l, err := ledger.New(keyFn, o.cfg.ItemHeight)
	if err != nil {
		return nil, err
	}

	m := &Model[T]{
		options:  o,
		render:   render,
		ledger:   l,
		viewport: &viewport{width: o.width, height: max(0, o.height)},
		header:   &slot{render: o.header},
		footer:   &slot{render: o.footer},
		empty:    &slot{render: o.empty},
	}
	m.header.refresh()
	m.footer.refresh()
	m.empty.refresh()
	m.viewport.content = m.contentHeight

	var header tracker.Measurable
	if o.header != nil {
		header = m.header
	}
	m.rec, err = reconcile.New(l, o.cfg.ReconcileConfig(), m.viewport, header, m.mount)
	if err != nil {
		return nil, err
	}
	m.rec.OnItemsResize(m.handleItemsResize)
	m.rec.OnError(m.reportError)

	m.tracker = tracker.NewScrollTracker(m.viewport, o.cfg.IdleDelayTime())
	m.tracker.OnScroll(func(e tracker.ScrollEntry) {
		m.emit(ScrollMsg{ScrollTop: e.ScrollTop, Direction: e.Direction})
	})
	m.tracker.OnScrollingChange(m.handleScrollingChange)
	m.tracker.OnTopReached(func() {
		m.emit(TopReachedMsg{})
	})
	m.tracker.OnBottomReached(func() {
		m.emit(BottomReachedMsg{})
	})
	m.tracker.Observe()

	m.scroller = scroll.NewManager(m.viewport, o.cfg.ScrollConfig())
	m.scroller.OnComplete(func() {
		m.emit(ScrollCompleteMsg{ScrollTop: m.viewport.ScrollTop()})
	})
	m.settle = debounce.New(o.cfg.ScrollDurationTime(), func() tea.Cmd {
		m.pending = nil
		return nil
	})
	return m, nil
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return m.sync()
}

// Update implements tea.Model.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.disposed {
		return m, nil
	}
	switch msg := msg.(type) {
	case scroll.FrameMsg:
		if ok, cmd := m.scroller.Handle(msg); ok {
			m.cmds = append(m.cmds, cmd)
		}
	case debounce.FireMsg:
		if ok, cmd := m.tracker.Handle(msg); ok {
			m.cmds = append(m.cmds, cmd)
		} else if ok, cmd := m.settle.Handle(msg); ok {
			m.cmds = append(m.cmds, cmd)
		} else {
			return m, nil
		}
	case tea.MouseWheelMsg:
		if !m.enableMouse {
			return m, nil
		}
		m.handleMouseWheel(msg)
	case tea.KeyPressMsg:
		if !m.focused || !m.handleKey(msg) {
			return m, nil
		}
	default:
		return m, nil
	}
	return m, m.sync()
}

func (m *Model[T]) handleMouseWheel(msg tea.MouseWheelMsg) {
	switch msg.Button {
	case tea.MouseWheelDown:
		m.scrollBy(ViewportDefaultScrollSize, false)
	case tea.MouseWheelUp:
		m.scrollBy(-ViewportDefaultScrollSize, false)
	}
}

func (m *Model[T]) handleKey(msg tea.KeyPressMsg) bool {
	smooth := m.cfg.SmoothScroll
	switch {
	case key.Matches(msg, m.keyMap.LineDown):
		m.scrollBy(1, false)
	case key.Matches(msg, m.keyMap.LineUp):
		m.scrollBy(-1, false)
	case key.Matches(msg, m.keyMap.NextItem):
		m.scrollToIndex(m.FirstVisibleIndex()+1, scroll.Options{Smooth: smooth})
	case key.Matches(msg, m.keyMap.PrevItem):
		m.scrollToIndex(m.FirstVisibleIndex()-1, scroll.Options{Smooth: smooth})
	case key.Matches(msg, m.keyMap.HalfPageDown):
		m.scrollBy(m.height/2, smooth)
	case key.Matches(msg, m.keyMap.HalfPageUp):
		m.scrollBy(-m.height/2, smooth)
	case key.Matches(msg, m.keyMap.PageDown):
		m.scrollBy(m.height, smooth)
	case key.Matches(msg, m.keyMap.PageUp):
		m.scrollBy(-m.height, smooth)
	case key.Matches(msg, m.keyMap.Bottom):
		m.scrollToBottom(scroll.Options{Smooth: smooth})
	case key.Matches(msg, m.keyMap.Top):
		m.scrollTo(0, smooth)
	default:
		return false
	}
	return true
}

// View implements tea.Model.
func (m *Model[T]) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	top := m.viewport.ScrollTop()
	r := rows{top: top, bottom: top + m.height, width: m.width}

	r.lines(m.header.lines)
	if m.ledger.Len() == 0 {
		r.lines(m.empty.lines)
	} else {
		paddingTop, paddingBottom := m.rec.Paddings()
		r.blank(paddingTop)
		for _, mounted := range m.rec.Window() {
			r.lines(mounted.Surface.(*surface[T]).lines)
		}
		r.blank(paddingBottom)
	}
	r.lines(m.footer.lines)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(strings.Join(r.out, "\n"))
}

// rows collects the visible part of a sequence of stacked blocks.
type rows struct {
	y, top, bottom, width int
	out                   []string
}

func (r *rows) lines(src []string) {
	from, to := max(0, r.top-r.y), min(len(src), r.bottom-r.y)
	for i := from; i < to; i++ {
		r.out = append(r.out, ansi.Truncate(src[i], r.width, ""))
	}
	r.y += len(src)
}

func (r *rows) blank(n int) {
	from, to := max(r.y, r.top), min(r.y+n, r.bottom)
	for range max(0, to-from) {
		r.out = append(r.out, "")
	}
	r.y += n
}

// SetDataSource replaces the records and lays the list out from the top.
func (m *Model[T]) SetDataSource(records []T) tea.Cmd {
	if m.disposed {
		return nil
	}
	m.scroller.Cancel()
	m.settle.Cancel()
	m.pending = nil

	m.ledger.SetDataSource(records)
	m.rec.Reset()
	m.viewport.top = 0
	m.tracker.Sync()
	return m.sync()
}

// DataSource returns the current records.
func (m *Model[T]) DataSource() []T {
	return m.ledger.DataSource()
}

// Refresh renders the mounted records, header and footer again, e.g. after
// records changed in place. Height changes are picked up by the next layout
// pass.
func (m *Model[T]) Refresh() tea.Cmd {
	if m.disposed {
		return nil
	}
	m.refresh()
	return m.sync()
}

// ScrollTo scrolls to an absolute position.
func (m *Model[T]) ScrollTo(position int, smooth bool) tea.Cmd {
	m.scrollTo(position, smooth)
	return m.sync()
}

func (m *Model[T]) ScrollToTop(smooth bool) tea.Cmd {
	return m.ScrollTo(0, smooth)
}

// ScrollToBottom scrolls to the end of the content and keeps it there
// while the mounted items are still being measured.
func (m *Model[T]) ScrollToBottom(smooth bool) tea.Cmd {
	m.scrollToBottom(scroll.Options{Smooth: smooth})
	return m.sync()
}

// ScrollToIndex scrolls the record at index into view. The index is clamped
// into the data source. The scroll is corrected while items it passes are
// measured.
func (m *Model[T]) ScrollToIndex(index int, opts scroll.Options) tea.Cmd {
	m.scrollToIndex(index, opts)
	return m.sync()
}

// ScrollBy scrolls relative to the current scroll target.
func (m *Model[T]) ScrollBy(delta int, smooth bool) tea.Cmd {
	m.scrollBy(delta, smooth)
	return m.sync()
}

func (m *Model[T]) scrollTo(position int, smooth bool) {
	if m.disposed {
		return
	}
	m.newCommand(nil)
	m.cmds = append(m.cmds, m.scroller.ScrollTo(m.viewport.clampTop(position), scroll.Options{Smooth: smooth}))
}

func (m *Model[T]) scrollBy(delta int, smooth bool) {
	from := m.viewport.ScrollTop()
	if target, ok := m.scroller.Target(); ok {
		from = target
	}
	m.scrollTo(from+delta, smooth)
}

func (m *Model[T]) scrollToBottom(opts scroll.Options) {
	if m.disposed {
		return
	}
	m.newCommand(&pendingScroll{kind: pendingBottom, opts: opts})
	m.issue()
}

func (m *Model[T]) scrollToIndex(index int, opts scroll.Options) {
	if m.disposed || m.ledger.Len() == 0 {
		return
	}
	index = min(max(index, 0), m.ledger.Len()-1)
	m.newCommand(&pendingScroll{kind: pendingIndex, index: index, opts: opts})
	m.issue()
}

// newCommand replaces the pending scroll.
func (m *Model[T]) newCommand(p *pendingScroll) {
	m.settle.Cancel()
	m.pending = p
}

// issue starts the pending scroll from the current geometry.
func (m *Model[T]) issue() {
	p := m.pending
	if p == nil {
		return
	}
	var target int
	switch p.kind {
	case pendingIndex:
		top, height := m.ledger.ItemOffset(p.index)
		target = scroll.AlignedOffset(top, height, m.height, p.opts.Alignment)
	case pendingBottom:
		target = m.viewport.maxScrollTop()
	}
	target = m.viewport.clampTop(target)
	slog.Debug("Issuing scroll", "kind", p.kind, "index", p.index, "target", target)
	m.cmds = append(m.cmds, m.scroller.ScrollTo(target, p.opts))
	if !m.scroller.Busy() && !m.tracker.IsScrolling() {
		// Already in place: start the settle period right away, a later
		// scroll cancels it.
		m.cmds = append(m.cmds, m.settle.Trigger())
	}
}

func (m *Model[T]) handleItemsResize(delta int) {
	if delta == 0 {
		return
	}
	m.emit(ItemsResizeMsg{Delta: delta})
	m.issue()
}

func (m *Model[T]) handleScrollingChange(scrolling bool) {
	m.emit(ScrollingChangeMsg{Scrolling: scrolling})
	if scrolling {
		m.settle.Cancel()
		return
	}
	if m.pending != nil {
		m.cmds = append(m.cmds, m.settle.Trigger())
	}
}

func (m *Model[T]) reportError(err error) {
	slog.Error("List error", "error", err)
	m.emit(ErrorMsg{Err: err})
}

func (m *Model[T]) emit(msg tea.Msg) {
	m.events = append(m.events, msg)
}

// sync measures and reconciles until the layout is stable, then flushes the
// queued events and commands.
func (m *Model[T]) sync() tea.Cmd {
	if m.disposed {
		return nil
	}
	for range maxLayoutPasses {
		m.cmds = append(m.cmds, m.tracker.Notify())
		if err := m.rec.Reconcile(m.viewport.ScrollTop()); err != nil {
			m.reportError(err)
		}
		changed := m.rec.CheckLayout()
		if m.viewport.clamp() {
			changed = true
		}
		if !changed {
			break
		}
	}
	m.cmds = append(m.cmds, m.tracker.Notify())
	return m.flush()
}

func (m *Model[T]) flush() tea.Cmd {
	cmds := m.cmds
	for _, msg := range m.events {
		cmds = append(cmds, cmdHandler(msg))
	}
	m.cmds, m.events = nil, nil
	return tea.Batch(cmds...)
}

func (m *Model[T]) mount(record T, key string, index int) reconcile.Surface {
	return &surface[T]{
		record: record,
		key:    key,
		index:  index,
		lines:  splitLines(m.render(record, key, index, m.width)),
	}
}

func (m *Model[T]) refresh() {
	m.header.refresh()
	m.footer.refresh()
	m.empty.refresh()
	for _, mounted := range m.rec.Window() {
		s := mounted.Surface.(*surface[T])
		s.lines = splitLines(m.render(s.record, s.key, s.index, m.width))
	}
}

func (m *Model[T]) contentHeight() int {
	if m.ledger.Len() == 0 {
		return m.header.Height() + m.empty.Height() + m.footer.Height()
	}
	return m.rec.ContentHeight() + m.footer.Height()
}

// FirstVisibleIndex returns the index of the first record whose top edge is
// inside the viewport, or of the record covering the viewport top when none
// starts inside it.
func (m *Model[T]) FirstVisibleIndex() int {
	top := m.viewport.ScrollTop()
	window := m.rec.Window()
	if len(window) == 0 {
		return 0
	}
	covering := -1
	itemTop := m.rec.SurfaceTop(0)
	for _, mounted := range window {
		if itemTop >= top+m.height {
			break
		}
		if itemTop >= top {
			return mounted.Index
		}
		bottom := itemTop + mounted.Surface.Height()
		if bottom > top {
			covering = mounted.Index
		}
		itemTop = bottom
	}
	if covering >= 0 {
		return covering
	}
	return 0
}

// RenderedIndexRange returns the indices of the mounted records.
func (m *Model[T]) RenderedIndexRange() (first, last int, ok bool) {
	r, ok := m.rec.RenderedIndexRange()
	return r.First, r.Last, ok
}

// Paddings returns the rows standing in for the records above and below the
// mounted window.
func (m *Model[T]) Paddings() (top, bottom int) {
	return m.rec.Paddings()
}

func (m *Model[T]) ScrollTop() int {
	return m.viewport.ScrollTop()
}

func (m *Model[T]) ScrollHeight() int {
	return m.viewport.ScrollHeight()
}

// IsScrolling reports whether the position changed recently.
func (m *Model[T]) IsScrolling() bool {
	return m.tracker.IsScrolling()
}

func (m *Model[T]) Direction() tracker.Direction {
	return m.tracker.Direction()
}

// SetSize resizes the list. A width change renders the mounted records
// again.
func (m *Model[T]) SetSize(width, height int) tea.Cmd {
	oldWidth := m.width
	m.width = width
	m.height = max(0, height)
	m.viewport.width = m.width
	m.viewport.height = m.height
	if oldWidth != width {
		m.refresh()
	}
	return m.sync()
}

func (m *Model[T]) GetSize() (int, int) {
	return m.width, m.height
}

// Focus enables the key bindings.
func (m *Model[T]) Focus() tea.Cmd {
	m.focused = true
	m.keyMap.SetEnabled(true)
	return nil
}

// Blur disables the key bindings. The list can still be scrolled through
// its methods.
func (m *Model[T]) Blur() tea.Cmd {
	m.focused = false
	m.keyMap.SetEnabled(false)
	return nil
}

func (m *Model[T]) IsFocused() bool {
	return m.focused
}

// KeyMap returns the bindings the list responds to.
func (m *Model[T]) KeyMap() KeyMap {
	return m.keyMap
}

// Dispose cancels any scroll, stops observing the layout and drops every
// record. The list ignores all messages afterwards.
func (m *Model[T]) Dispose() {
	if m.disposed {
		return
	}
	m.scroller.Dispose()
	m.settle.Dispose()
	m.tracker.Dispose()
	m.rec.Dispose()
	m.ledger.Dispose()
	m.pending = nil
	m.events, m.cmds = nil, nil
	m.disposed = true
}
