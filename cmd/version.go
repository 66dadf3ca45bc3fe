package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print wfx version",
	Annotations: map[string]string{skipConfigCheck: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wfx %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
