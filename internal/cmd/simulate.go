package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/tujuhre12/vlist/internal/config"
	"github.com/tujuhre12/vlist/internal/log"
	"github.com/tujuhre12/vlist/internal/tui/list"
	"github.com/tujuhre12/vlist/internal/vlist/scroll"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Lay out a list headlessly and print the window after each scroll",
	Long: heredoc.Doc(`
		Build a list of uniform records without a terminal, then scroll it to
		an index, to the bottom and back to the top. After each step the
		scroll position, the mounted index range, the paddings and the total
		content height are printed.

		Records are rendered with --height rows while the list estimates
		unmeasured records with --estimate rows, so a mismatch shows how the
		scroll is corrected while records are measured.
	`),
	Example: heredoc.Doc(`
		# Simulate 100,000 records of 3 rows
		vlist simulate

		# Underestimate record heights and jump to the middle, centered
		vlist simulate -n 10000 --height 4 --estimate 1 --align center
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, debug, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		log.SetupConsole(cmd.ErrOrStderr(), debug)

		p := simulation{opts: opts}
		p.count, _ = cmd.Flags().GetInt("count")
		p.height, _ = cmd.Flags().GetInt("height")
		p.viewport, _ = cmd.Flags().GetInt("viewport")
		p.jump, _ = cmd.Flags().GetInt("jump")
		estimate, _ := cmd.Flags().GetInt("estimate")
		if estimate > 0 {
			p.opts.ItemHeight = estimate
		}
		align, _ := cmd.Flags().GetString("align")
		if p.align, err = scroll.ParseAlignment(align); err != nil {
			return err
		}
		if !cmd.Flags().Changed("jump") {
			p.jump = p.count / 2
		}
		return runSimulation(cmd.OutOrStdout(), p)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntP("count", "n", 100_000, "Number of records")
	simulateCmd.Flags().Int("height", 3, "Rendered height of every record")
	simulateCmd.Flags().Int("estimate", 0, "Estimated record height (defaults to item_height from the config)")
	simulateCmd.Flags().Int("viewport", 30, "Viewport height")
	simulateCmd.Flags().Int("jump", 0, "Index to scroll to (defaults to the middle record)")
	simulateCmd.Flags().String("align", "start", "Alignment of the jump target (start, center, end)")
}

type simulation struct {
	opts     config.Options
	count    int
	height   int
	viewport int
	jump     int
	align    scroll.Alignment
}

type record struct {
	id     int
	height int
}

func (p simulation) validate() error {
	switch {
	case p.count < 0:
		return fmt.Errorf("count must not be negative: %d", p.count)
	case p.height < 1:
		return fmt.Errorf("height must be at least 1: %d", p.height)
	case p.viewport < 1:
		return fmt.Errorf("viewport must be at least 1: %d", p.viewport)
	}
	return nil
}

func runSimulation(w io.Writer, p simulation) error {
	if err := p.validate(); err != nil {
		return err
	}

	l, err := list.New(
		func(r record, _ int) string {
			return strconv.Itoa(r.id)
		},
		func(r record, _ string, _, _ int) string {
			return strings.TrimSuffix(strings.Repeat(strconv.Itoa(r.id)+"\n", r.height), "\n")
		},
		list.WithConfig(p.opts),
		list.WithSize(80, p.viewport),
	)
	if err != nil {
		return err
	}
	defer l.Dispose()

	records := make([]record, p.count)
	for i := range records {
		records[i] = record{id: i, height: p.height}
	}

	fmt.Fprintf(w, "%-12s %8s %6s %6s %9s %9s %9s\n",
		"step", "top", "first", "last", "pad-top", "pad-bot", "height")
	steps := []struct {
		name string
		run  func() int
	}{
		{"initial", func() int { return logEvents(l.Run(l.SetDataSource(records))) }},
		{fmt.Sprintf("index %d", p.jump), func() int {
			return logEvents(l.Run(l.ScrollToIndex(p.jump, scroll.Options{Alignment: p.align})))
		}},
		{"bottom", func() int { return logEvents(l.Run(l.ScrollToBottom(false))) }},
		{"top", func() int { return logEvents(l.Run(l.ScrollToTop(false))) }},
	}
	for _, step := range steps {
		events := step.run()
		slog.Debug("Simulation step", "step", step.name, "events", events)

		first, last, ok := l.RenderedIndexRange()
		if !ok {
			first, last = -1, -1
		}
		top, bottom := l.Paddings()
		fmt.Fprintf(w, "%-12s %8d %6d %6d %9d %9d %9d\n",
			step.name, l.ScrollTop(), first, last, top, bottom, l.ScrollHeight())
	}
	return nil
}

// logEvents logs the notable list events of a step and returns how many
// there were.
func logEvents(msgs []tea.Msg) int {
	for _, msg := range msgs {
		switch msg := msg.(type) {
		case list.ErrorMsg:
			slog.Warn("List error", "error", msg.Err)
		case list.ItemsResizeMsg:
			slog.Debug("Items resized", "delta", msg.Delta)
		}
	}
	return len(msgs)
}
