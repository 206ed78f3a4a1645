package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/tujuhre12/vlist/internal/config"
	"github.com/tujuhre12/vlist/internal/log"
	"github.com/tujuhre12/vlist/internal/tui/demo"
	"github.com/tujuhre12/vlist/internal/version"
)

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().String("config-file", "", "Options file (defaults to $VLIST_CONFIG or the user config directory)")

	rootCmd.Flags().IntP("count", "n", 100_000, "Number of records to generate")
	rootCmd.Flags().Int64("seed", 1, "Seed of the generated records")
	rootCmd.Flags().StringP("filter", "f", "", "Only show records whose title fuzzy-matches the filter")
}

var rootCmd = &cobra.Command{
	Use:   "vlist",
	Short: "Windowed list engine for terminal UIs",
	Long: heredoc.Doc(`
		vlist renders very large lists in the terminal by mounting only the
		records around the viewport. The rest of the content is accounted for
		by padding computed from measured and estimated heights.

		Run without arguments to browse a generated data set.
	`),
	Example: heredoc.Doc(`
		# Browse 100,000 generated records
		vlist

		# Browse a smaller data set narrowed by a fuzzy filter
		vlist -n 5000 --filter "window offset"

		# Run with debug logging
		vlist -d
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, debug, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		filter, _ := cmd.Flags().GetString("filter")
		if count < 0 {
			return fmt.Errorf("count must not be negative: %d", count)
		}
		if !term.IsTerminal(os.Stdout.Fd()) {
			return errors.New("the demo needs a terminal, use `vlist simulate` for headless runs")
		}

		log.Setup(config.GlobalLogFile(), debug)
		slog.Info("Starting demo", "count", count, "seed", seed, "filter", filter)

		records := demo.Filter(demo.Generate(count, seed), filter)
		model, err := demo.New(records, opts)
		if err != nil {
			return err
		}
		defer model.Dispose()

		programOpts := []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		}
		if opts.Mouse {
			programOpts = append(programOpts, tea.WithMouseCellMotion())
		}
		program := tea.NewProgram(model, programOpts...)

		defer log.RecoverPanic("main", nil)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
	); err != nil {
		os.Exit(1)
	}
}

// loadOptions reads the options file selected by the flags. The debug flag
// is merged with the file's debug setting.
func loadOptions(cmd *cobra.Command) (config.Options, bool, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	path := configPath(cmd)
	opts, err := config.Load(path)
	if err != nil {
		return opts, debug, err
	}
	return opts, debug || opts.Debug, nil
}

func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config-file"); path != "" {
		return path
	}
	return config.GlobalConfig()
}
