package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tujuhre12/vlist/internal/config"
)

var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Print the JSON schema of the options file",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
