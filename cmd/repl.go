package cmd

import (
	"github.com/spf13/cobra"

	"github.com/steshaw/schemey/repl"
)

// replCmd starts an interactive session regardless of whether stdin is a
// terminal.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repl.Run(newEnv(nil), prompt)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
