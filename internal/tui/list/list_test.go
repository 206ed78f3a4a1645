package list

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tujuhre12/vlist/internal/config"
	"github.com/tujuhre12/vlist/internal/vlist/scroll"
	"github.com/tujuhre12/vlist/internal/vlist/tracker"
)

type row struct {
	id     string
	height int
}

func makeRows(n, height int) []*row {
	rows := make([]*row, n)
	for i := range rows {
		rows[i] = &row{id: fmt.Sprintf("r%d", i), height: height}
	}
	return rows
}

func rowKey(r *row, _ int) string {
	return r.id
}

func renderRow(r *row, _ string, _, _ int) string {
	lines := make([]string, r.height)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s:%d", r.id, i)
	}
	return strings.Join(lines, "\n")
}

func testConfig(itemHeight, buffer int) config.Options {
	cfg := config.Defaults()
	cfg.ItemHeight = itemHeight
	cfg.LeadingBuffer = buffer
	cfg.TrailingBuffer = buffer
	cfg.ScrollDuration = 20
	cfg.Frame = 1
	cfg.IdleDelay = 5
	cfg.SmoothScroll = false
	return cfg
}

func newList(t *testing.T, opts ...Option) *Model[*row] {
	t.Helper()
	l, err := New(rowKey, renderRow, opts...)
	require.NoError(t, err)
	t.Cleanup(l.Dispose)
	return l
}

func drain(t *testing.T, l *Model[*row], cmd tea.Cmd) []tea.Msg {
	t.Helper()
	return l.Run(cmd)
}

func viewLines(l *Model[*row]) []string {
	lines := strings.Split(ansi.Strip(l.View()), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a render func", func(t *testing.T) {
		t.Parallel()
		_, err := New[*row](rowKey, nil)
		require.ErrorIs(t, err, ErrNilRenderFunc)
	})

	t.Run("rejects invalid options", func(t *testing.T) {
		t.Parallel()
		cfg := config.Defaults()
		cfg.Frame = 0
		_, err := New(rowKey, renderRow, WithConfig(cfg))
		require.ErrorIs(t, err, config.ErrInvalidFrame)
	})
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	l := newList(t,
		WithSize(20, 5),
		WithConfig(testConfig(1, 2)),
		WithEmpty(func() string { return "No records" }),
	)
	drain(t, l, l.Init())

	top, bottom := l.Paddings()
	assert.Zero(t, top)
	assert.Zero(t, bottom)
	_, _, ok := l.RenderedIndexRange()
	assert.False(t, ok)
	assert.Equal(t, "No records", viewLines(l)[0])

	drain(t, l, l.SetDataSource(makeRows(10, 1)))
	assert.Equal(t, "r0:0", viewLines(l)[0])

	drain(t, l, l.SetDataSource(nil))
	top, bottom = l.Paddings()
	assert.Zero(t, top)
	assert.Zero(t, bottom)
	assert.Zero(t, l.ScrollTop())
	assert.Equal(t, "No records", viewLines(l)[0])
}

func TestLargeDataSource(t *testing.T) {
	t.Parallel()

	const n = 100_000
	l := newList(t, WithSize(20, 500), WithConfig(testConfig(50, 300)))
	drain(t, l, l.SetDataSource(makeRows(n, 50)))

	first, last, ok := l.RenderedIndexRange()
	require.True(t, ok)
	assert.Equal(t, 0, first)
	assert.Equal(t, 15, last)
	top, bottom := l.Paddings()
	assert.Zero(t, top)
	assert.Equal(t, (n-16)*50, bottom)
	assert.Equal(t, n*50, l.ScrollHeight())

	t.Run("scroll to index", func(t *testing.T) {
		out := drain(t, l, l.ScrollToIndex(50_000, scroll.Options{Alignment: scroll.AlignStart}))

		assert.Equal(t, 2_500_000, l.ScrollTop())
		assert.Equal(t, 50_000, l.FirstVisibleIndex())
		first, last, ok := l.RenderedIndexRange()
		require.True(t, ok)
		assert.Equal(t, 49_994, first)
		assert.Equal(t, 50_015, last)
		top, bottom := l.Paddings()
		assert.Equal(t, 49_994*50, top)
		assert.Equal(t, (n-50_016)*50, bottom)

		assert.Contains(t, out, ScrollCompleteMsg{ScrollTop: 2_500_000})
		assert.Contains(t, out, ScrollingChangeMsg{Scrolling: true})
		assert.Contains(t, out, ScrollingChangeMsg{Scrolling: false})
		assert.Contains(t, out, ScrollMsg{ScrollTop: 2_500_000, Direction: tracker.DirectionDown})
		assert.False(t, l.IsScrolling())
	})

	t.Run("clamps the index", func(t *testing.T) {
		drain(t, l, l.ScrollToIndex(n+10, scroll.Options{Alignment: scroll.AlignEnd}))
		assert.Equal(t, n*50-500, l.ScrollTop())
		_, last, _ := l.RenderedIndexRange()
		assert.Equal(t, n-1, last)
	})
}

func TestScrollCorrection(t *testing.T) {
	t.Parallel()

	t.Run("smooth scroll follows a resized item", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(5, 10)
		cfg.SmoothThreshold = 1_000_000
		l := newList(t, WithSize(20, 20), WithConfig(cfg))
		drain(t, l, l.SetDataSource(makeRows(1000, 5)))

		cmd := l.ScrollToIndex(400, scroll.Options{Smooth: true})
		require.NotNil(t, cmd)
		require.Greater(t, l.ScrollTop(), 0)
		require.Less(t, l.ScrollTop(), 2000)

		first, _, ok := l.RenderedIndexRange()
		require.True(t, ok)
		require.Less(t, first+1, 400)
		l.DataSource()[first+1].height = 12
		refresh := l.Refresh()

		out := drain(t, l, tea.Batch(cmd, refresh))
		assert.Contains(t, out, ItemsResizeMsg{Delta: 7})
		assert.Equal(t, 2007, l.ScrollTop())
		assert.Equal(t, 400, l.FirstVisibleIndex())
		assert.Contains(t, out, ScrollCompleteMsg{ScrollTop: 2007})
		assert.NotContains(t, out, ScrollCompleteMsg{ScrollTop: 2000})
	})

	t.Run("scroll to bottom follows measured items", func(t *testing.T) {
		t.Parallel()
		l := newList(t, WithSize(20, 10), WithConfig(testConfig(1, 0)))
		drain(t, l, l.SetDataSource(makeRows(50, 3)))

		out := drain(t, l, l.ScrollToBottom(false))
		assert.Equal(t, l.ScrollHeight()-10, l.ScrollTop())
		_, last, ok := l.RenderedIndexRange()
		require.True(t, ok)
		assert.Equal(t, 49, last)
		assert.Contains(t, out, BottomReachedMsg{})
		assert.Equal(t, "r49:2", viewLines(l)[9])
	})
}

func TestScrollToIndexConverges(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		index     int
		alignment scroll.Alignment
	}{
		{327, scroll.AlignCenter},
		{327, scroll.AlignStart},
		{640, scroll.AlignEnd},
		{11, scroll.AlignCenter},
	} {
		t.Run(fmt.Sprintf("%d %s", tc.index, tc.alignment), func(t *testing.T) {
			t.Parallel()
			cfg := testConfig(1, 10)
			cfg.SmoothScroll = true
			cfg.SmoothThreshold = 1_000_000
			l := newList(t, WithSize(80, 30), WithConfig(cfg))
			rows := makeRows(1000, 1)
			for i, r := range rows {
				r.height = 1 + i%6
			}
			drain(t, l, l.SetDataSource(rows))

			drain(t, l, l.ScrollToIndex(tc.index, scroll.Options{Smooth: true, Alignment: tc.alignment}))

			top, height := l.ledger.ItemOffset(tc.index)
			want := l.viewport.clampTop(scroll.AlignedOffset(top, height, 30, tc.alignment))
			assert.Equal(t, want, l.ScrollTop())
			first, last, ok := l.RenderedIndexRange()
			require.True(t, ok)
			assert.LessOrEqual(t, first, tc.index)
			assert.GreaterOrEqual(t, last, tc.index)
			assert.False(t, l.IsScrolling())
		})
	}
}

func TestFirstVisibleIndex(t *testing.T) {
	t.Parallel()

	t.Run("first record starting in the viewport", func(t *testing.T) {
		t.Parallel()
		l := newList(t, WithSize(20, 10), WithConfig(testConfig(3, 2)))
		drain(t, l, l.SetDataSource(makeRows(100, 3)))

		assert.Zero(t, l.FirstVisibleIndex())
		drain(t, l, l.ScrollTo(4, false))
		assert.Equal(t, 2, l.FirstVisibleIndex())
		drain(t, l, l.ScrollTo(6, false))
		assert.Equal(t, 2, l.FirstVisibleIndex())
	})

	t.Run("record covering the viewport", func(t *testing.T) {
		t.Parallel()
		l := newList(t, WithSize(20, 10), WithConfig(testConfig(30, 0)))
		drain(t, l, l.SetDataSource(makeRows(10, 30)))

		drain(t, l, l.ScrollTo(35, false))
		assert.Equal(t, 1, l.FirstVisibleIndex())
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		l := newList(t, WithSize(20, 10))
		assert.Zero(t, l.FirstVisibleIndex())
	})
}

type tickMsg string

func TestRunOrder(t *testing.T) {
	t.Parallel()

	l := newList(t, WithSize(20, 10), WithConfig(testConfig(1, 0)))
	slow := tea.Tick(30*time.Millisecond, func(time.Time) tea.Msg { return tickMsg("slow") })
	fast := tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg("fast") })

	out := l.Run(tea.Batch(slow, fast))
	assert.Equal(t, []tea.Msg{tickMsg("fast"), tickMsg("slow")}, out)
}

func TestItemsResize(t *testing.T) {
	t.Parallel()

	l := newList(t, WithSize(20, 10), WithConfig(testConfig(1, 0)))
	out := drain(t, l, l.SetDataSource(makeRows(100, 3)))

	assert.Contains(t, out, ItemsResizeMsg{Delta: 20})
	for _, msg := range out {
		if resize, ok := msg.(ItemsResizeMsg); ok {
			assert.NotZero(t, resize.Delta)
		}
	}
	first, last, ok := l.RenderedIndexRange()
	require.True(t, ok)
	assert.Equal(t, 0, first)
	assert.Equal(t, 3, last)
	top, bottom := l.Paddings()
	assert.Zero(t, top)
	assert.Equal(t, 108, bottom)
	assert.Equal(t, 120, l.ScrollHeight())

	t.Run("viewport growth mounts more items", func(t *testing.T) {
		drain(t, l, l.SetSize(20, 20))
		first, last, ok := l.RenderedIndexRange()
		require.True(t, ok)
		assert.Equal(t, 0, first)
		assert.Equal(t, 6, last)
		assert.Equal(t, 120, l.ScrollHeight())
	})
}

func TestKeys(t *testing.T) {
	t.Parallel()

	press := func(code rune, mod tea.KeyMod) tea.Msg {
		return tea.KeyPressMsg(tea.Key{Code: code, Mod: mod})
	}
	text := func(s string) tea.Msg {
		return tea.KeyPressMsg(tea.Key{Code: rune(s[0]), Text: s})
	}
	update := func(t *testing.T, l *Model[*row], msg tea.Msg) []tea.Msg {
		t.Helper()
		_, cmd := l.Update(msg)
		return drain(t, l, cmd)
	}

	l := newList(t, WithSize(20, 10), WithConfig(testConfig(1, 5)))
	drain(t, l, l.SetDataSource(makeRows(100, 1)))

	update(t, l, press(tea.KeyDown, 0))
	assert.Equal(t, 1, l.ScrollTop())
	update(t, l, press(tea.KeyUp, 0))
	assert.Equal(t, 0, l.ScrollTop())

	update(t, l, press(tea.KeyPgDown, 0))
	assert.Equal(t, 10, l.ScrollTop())
	update(t, l, text("d"))
	assert.Equal(t, 15, l.ScrollTop())
	update(t, l, text("u"))
	assert.Equal(t, 10, l.ScrollTop())

	update(t, l, press(tea.KeyDown, tea.ModShift))
	assert.Equal(t, 11, l.ScrollTop())
	assert.Equal(t, 11, l.FirstVisibleIndex())

	out := update(t, l, press(tea.KeyEnd, 0))
	assert.Equal(t, 90, l.ScrollTop())
	assert.Contains(t, out, BottomReachedMsg{})

	out = update(t, l, press(tea.KeyHome, 0))
	assert.Zero(t, l.ScrollTop())
	assert.Contains(t, out, TopReachedMsg{})

	t.Run("blurred list ignores keys", func(t *testing.T) {
		l.Blur()
		assert.False(t, l.IsFocused())
		assert.False(t, l.KeyMap().LineDown.Enabled())
		_, cmd := l.Update(press(tea.KeyDown, 0))
		assert.Nil(t, cmd)
		assert.Zero(t, l.ScrollTop())
		l.Focus()
		assert.True(t, l.IsFocused())
		assert.True(t, l.KeyMap().Bottom.Enabled())
	})
}

func TestMouseWheel(t *testing.T) {
	t.Parallel()

	wheel := func(button tea.MouseButton) tea.Msg {
		return tea.MouseWheelMsg(tea.Mouse{Button: button})
	}

	t.Run("scrolls when enabled", func(t *testing.T) {
		t.Parallel()
		l := newList(t, WithSize(20, 10), WithConfig(testConfig(1, 5)))
		drain(t, l, l.SetDataSource(makeRows(100, 1)))

		_, cmd := l.Update(wheel(tea.MouseWheelDown))
		drain(t, l, cmd)
		assert.Equal(t, ViewportDefaultScrollSize, l.ScrollTop())
		_, cmd = l.Update(wheel(tea.MouseWheelUp))
		drain(t, l, cmd)
		assert.Zero(t, l.ScrollTop())
	})

	t.Run("ignored when disabled", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(1, 5)
		cfg.Mouse = false
		l := newList(t, WithSize(20, 10), WithConfig(cfg))
		drain(t, l, l.SetDataSource(makeRows(100, 1)))

		_, cmd := l.Update(wheel(tea.MouseWheelDown))
		assert.Nil(t, cmd)
		assert.Zero(t, l.ScrollTop())
	})
}

func TestView(t *testing.T) {
	t.Parallel()

	l := newList(t,
		WithSize(10, 4),
		WithConfig(testConfig(1, 2)),
		WithHeader(func() string { return "HEAD" }),
		WithFooter(func() string { return "FOOT" }),
	)
	drain(t, l, l.SetDataSource(makeRows(5, 1)))

	assert.Equal(t, []string{"HEAD", "r0:0", "r1:0", "r2:0"}, viewLines(l))
	assert.Equal(t, 7, l.ScrollHeight())

	drain(t, l, l.ScrollToBottom(false))
	assert.Equal(t, 3, l.ScrollTop())
	assert.Equal(t, []string{"r2:0", "r3:0", "r4:0", "FOOT"}, viewLines(l))

	t.Run("long lines are truncated", func(t *testing.T) {
		rows := makeRows(3, 1)
		rows[0].id = strings.Repeat("x", 20)
		drain(t, l, l.SetDataSource(rows))
		assert.Equal(t, strings.Repeat("x", 10), viewLines(l)[1])
	})

	t.Run("zero size renders nothing", func(t *testing.T) {
		drain(t, l, l.SetSize(0, 0))
		assert.Empty(t, l.View())
	})
}

func TestSetSize(t *testing.T) {
	t.Parallel()

	l, err := New(rowKey, func(r *row, _ string, _, width int) string {
		return strings.Repeat("=", width)
	}, WithSize(5, 3), WithConfig(testConfig(1, 1)))
	require.NoError(t, err)
	t.Cleanup(l.Dispose)

	drain(t, l, l.SetDataSource(makeRows(10, 1)))
	assert.Equal(t, "=====", viewLines(l)[0])

	drain(t, l, l.SetSize(8, 3))
	w, h := l.GetSize()
	assert.Equal(t, 8, w)
	assert.Equal(t, 3, h)
	assert.Equal(t, "========", viewLines(l)[0])
}

func TestScrollBy(t *testing.T) {
	t.Parallel()

	l := newList(t, WithSize(20, 10), WithConfig(testConfig(1, 5)))
	drain(t, l, l.SetDataSource(makeRows(100, 1)))

	drain(t, l, l.ScrollBy(25, false))
	assert.Equal(t, 25, l.ScrollTop())
	drain(t, l, l.ScrollBy(-100, false))
	assert.Zero(t, l.ScrollTop())
	drain(t, l, l.ScrollTo(1000, false))
	assert.Equal(t, 90, l.ScrollTop())
	drain(t, l, l.ScrollToTop(false))
	assert.Zero(t, l.ScrollTop())
}

func TestDispose(t *testing.T) {
	t.Parallel()

	l, err := New(rowKey, renderRow, WithSize(20, 10), WithConfig(testConfig(1, 5)))
	require.NoError(t, err)
	drain(t, l, l.SetDataSource(makeRows(100, 1)))

	l.Dispose()
	l.Dispose()
	assert.Nil(t, l.DataSource())
	assert.Nil(t, l.ScrollTo(50, false))
	assert.Nil(t, l.SetDataSource(makeRows(10, 1)))
	_, cmd := l.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyDown}))
	assert.Nil(t, cmd)
	assert.Zero(t, l.ScrollTop())
}
