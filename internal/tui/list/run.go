package list

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/tujuhre12/vlist/internal/vlist/debounce"
	"github.com/tujuhre12/vlist/internal/vlist/scroll"
)

const maxRunSteps = 1 << 20

// Run executes cmd and every command it leads to, delivering the list's
// own frame and idle messages back to it, until nothing is left. It returns
// the messages meant for the parent. Run blocks for as long as the
// scheduled ticks take and is meant for headless use.
//
// Commands run concurrently, as in a program, so ticks are delivered in the
// order they fire. Ticks due at the same instant may arrive in any order;
// keep idle_ms above frame_ms for scrolls to settle deterministically.
func (m *Model[T]) Run(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	msgs := make(chan tea.Msg)
	done := make(chan struct{})
	defer close(done)

	pending := 0
	start := func(c tea.Cmd) {
		if c == nil {
			return
		}
		pending++
		go func() {
			select {
			case msgs <- c():
			case <-done:
			}
		}()
	}

	start(cmd)
	for steps := 0; pending > 0; steps++ {
		if steps == maxRunSteps {
			slog.Warn("Commands did not settle", "steps", steps, "pending", pending)
			break
		}
		msg := <-msgs
		pending--
		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			for _, c := range msg {
				start(c)
			}
		case scroll.FrameMsg, debounce.FireMsg:
			_, c := m.Update(msg)
			start(c)
		default:
			out = append(out, msg)
		}
	}
	return out
}
