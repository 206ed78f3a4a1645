package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tujuhre12/vlist/internal/config"
)

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "Print directories used by vlist",
	Long: `Print the directories where vlist keeps its options file and its logs.
The options directory follows --config-file and $VLIST_CONFIG.`,
	Example: `
# Print all directories
vlist dirs

# Print only the config directory
vlist dirs --config

# Print only the log directory
vlist dirs --logs
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		configOnly, _ := cmd.Flags().GetBool("config")
		logsOnly, _ := cmd.Flags().GetBool("logs")

		if configOnly && logsOnly {
			return fmt.Errorf("cannot specify both --config and --logs flags")
		}

		configDir := filepath.Dir(configPath(cmd))
		logDir := filepath.Dir(config.GlobalLogFile())
		w := cmd.OutOrStdout()

		if configOnly {
			fmt.Fprintln(w, configDir)
			return nil
		}

		if logsOnly {
			fmt.Fprintln(w, logDir)
			return nil
		}

		// Print both by default
		fmt.Fprintf(w, "Config directory: %s\n", configDir)
		fmt.Fprintf(w, "Log directory:    %s\n", logDir)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dirsCmd)
	dirsCmd.Flags().Bool("config", false, "Print only the config directory")
	dirsCmd.Flags().Bool("logs", false, "Print only the log directory")
}
