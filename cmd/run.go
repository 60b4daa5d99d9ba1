package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steshaw/schemey/lisp"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] file...",
	Short: "Run lisp code",
	Long:  `Run lisp code supplied via the command line or files.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := newEnv(nil)
		for _, arg := range args {
			var v *lisp.LVal
			if runExpression {
				v = env.LoadString("command-line", arg)
			} else {
				v = env.LoadFile(arg)
			}
			if err := lisp.GoError(v); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if runPrint && !v.IsNil() {
				fmt.Println(v)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
