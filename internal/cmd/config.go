package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tujuhre12/vlist/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit the list options",
	Long:  `Show the effective options, change a single option, or write the defaults to the options file`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, _, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return formatOptions(cmd.OutOrStdout(), opts, format)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single option",
	Long: heredoc.Docf(`
		Set a single option in the options file, creating it when needed.
		The file is left untouched if the new value is invalid.

		Keys: %s
	`, strings.Join(config.FieldNames(), ", ")),
	Example: heredoc.Doc(`
		# Estimate unmeasured items at 3 rows
		vlist config set item_height 3

		# Disable smooth scrolling
		vlist config set smooth_scroll false
	`),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath(cmd)
		if err := config.SetField(path, args[0], parseValue(args[1])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default options file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := configPath(cmd)
		if err := config.Init(path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)

	configShowCmd.Flags().StringP("format", "f", "json", "Output format (json, yaml)")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing options file")
}

// parseValue turns a command line value into the JSON type it spells.
func parseValue(s string) any {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	return s
}

func formatOptions(w io.Writer, opts config.Options, format string) error {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(opts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(opts)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Fprint(w, string(data))
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
