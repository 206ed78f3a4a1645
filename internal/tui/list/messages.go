package list

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/tujuhre12/vlist/internal/vlist/tracker"
)

// ScrollMsg is sent whenever the scroll position changes.
type ScrollMsg struct {
	ScrollTop int
	Direction tracker.Direction
}

// ScrollingChangeMsg is sent when scrolling starts and when it has been idle
// long enough to be considered stopped.
type ScrollingChangeMsg struct {
	Scrolling bool
}

// TopReachedMsg is sent when the viewport reaches the top of the content.
type TopReachedMsg struct{}

// BottomReachedMsg is sent when the viewport reaches the end of the content.
type BottomReachedMsg struct{}

// ItemsResizeMsg carries the summed height change of a batch of mounted
// items.
type ItemsResizeMsg struct {
	Delta int
}

// ScrollCompleteMsg is sent when a programmatic scroll settles.
type ScrollCompleteMsg struct {
	ScrollTop int
}

// ErrorMsg reports an error raised inside the list.
type ErrorMsg struct {
	Err error
}

func (e ErrorMsg) Error() string {
	return e.Err.Error()
}

func cmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
