// Package demo is an interactive program exercising the windowed list on a
// large generated data set.
package demo

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"

	"github.com/tujuhre12/vlist/internal/config"
	"github.com/tujuhre12/vlist/internal/tui/list"
	"github.com/tujuhre12/vlist/internal/vlist/scroll"
)

type status struct {
	direction string
	scrolling bool
	edge      string
	resized   int
	err       error
}

// Model is the demo program.
type Model struct {
	list     *list.Model[*Record]
	records  []*Record
	styles   Styles
	help     help.Model
	keyMap   KeyMap
	heartbit *Heartbit
	status   status
	width    int
	height   int
	// jumpTo picks the target of a random jump.
	jumpTo func(n int) int
}

// New creates the demo for records.
func New(records []*Record, cfg config.Options) (*Model, error) {
	m := &Model{
		records:  records,
		styles:   DefaultStyles(),
		help:     help.New(),
		keyMap:   DefaultKeyMap(),
		heartbit: NewHeartbit(),
		jumpTo:   rand.IntN,
	}
	renderer := NewRenderer(m.styles)
	l, err := list.New(Key, renderer.Render,
		list.WithConfig(cfg),
		list.WithKeyMap(m.keyMap.List),
		list.WithHeader(m.header),
		list.WithFooter(func() string {
			return m.styles.Footer.Render("· end of list ·")
		}),
		list.WithEmpty(func() string {
			return lipgloss.JoinVertical(lipgloss.Left,
				m.styles.Heart.Render(m.heartbit.Render()),
				m.styles.Subtle.Render("Nothing matches."),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	m.list = l
	return m, nil
}

func (m *Model) header() string {
	return Gradient(fmt.Sprintf("vlist · %d records", len(m.records)), m.styles.Header, charmtone.Charple, charmtone.Dolly)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.list.SetDataSource(m.records)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.layout()
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, m.layout()
		case key.Matches(msg, m.keyMap.Expand):
			return m, m.toggleExpanded()
		case key.Matches(msg, m.keyMap.Jump):
			return m, m.jump()
		}
	case list.ScrollMsg:
		m.status.direction = msg.Direction.String()
		m.status.edge = ""
		return m, nil
	case list.ScrollingChangeMsg:
		m.status.scrolling = msg.Scrolling
		return m, nil
	case list.TopReachedMsg:
		m.status.edge = "top"
		return m, nil
	case list.BottomReachedMsg:
		m.status.edge = "bottom"
		return m, nil
	case list.ItemsResizeMsg:
		m.status.resized += msg.Delta
		return m, nil
	case list.ScrollCompleteMsg:
		slog.Debug("Scroll completed", "scrollTop", msg.ScrollTop)
		return m, nil
	case list.ErrorMsg:
		slog.Error("List error", "error", msg.Err)
		m.status.err = msg.Err
		return m, nil
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

// layout gives the list every row not taken by the status line and help.
func (m *Model) layout() tea.Cmd {
	below := 1 + lipgloss.Height(m.help.View(m.keyMap))
	return m.list.SetSize(m.width, max(0, m.height-below))
}

// SetRecords replaces the records shown.
func (m *Model) SetRecords(records []*Record) tea.Cmd {
	m.records = records
	return tea.Batch(
		m.list.SetDataSource(records),
		m.list.Refresh(),
	)
}

func (m *Model) toggleExpanded() tea.Cmd {
	if len(m.records) == 0 {
		return nil
	}
	r := m.records[m.list.FirstVisibleIndex()]
	r.Expanded = !r.Expanded
	return m.list.Refresh()
}

func (m *Model) jump() tea.Cmd {
	if len(m.records) == 0 {
		return nil
	}
	index := m.jumpTo(len(m.records))
	slog.Debug("Jumping", "index", index)
	return m.list.ScrollToIndex(index, scroll.Options{
		Smooth:    true,
		Alignment: scroll.AlignCenter,
	})
}

// View renders the program.
func (m *Model) View() tea.View {
	return tea.NewView(m.Render())
}

// Render draws the list, the status line and the help.
func (m *Model) Render() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.list.View(),
		m.statusLine(),
		m.help.View(m.keyMap),
	)
}

func (m *Model) statusLine() string {
	if m.status.err != nil {
		return m.styles.Error.Render(m.status.err.Error())
	}
	parts := []string{fmt.Sprintf("top %d/%d", m.list.ScrollTop(), m.list.ScrollHeight())}
	if first, last, ok := m.list.RenderedIndexRange(); ok {
		parts = append(parts, fmt.Sprintf("window %d..%d", first, last))
	}
	top, bottom := m.list.Paddings()
	parts = append(parts, fmt.Sprintf("padding %d/%d", top, bottom))
	if m.status.scrolling {
		parts = append(parts, m.styles.Selected.Render("scrolling "+m.status.direction))
	}
	if m.status.edge != "" {
		parts = append(parts, "at "+m.status.edge)
	}
	if m.status.resized != 0 {
		parts = append(parts, fmt.Sprintf("resized %+d", m.status.resized))
	}
	return m.styles.Status.Render(strings.Join(parts, " · "))
}

// Dispose releases the list.
func (m *Model) Dispose() {
	m.list.Dispose()
}
