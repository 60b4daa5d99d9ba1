package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/steshaw/schemey/lisp"
	"github.com/steshaw/schemey/parser"
	"github.com/steshaw/schemey/repl"
)

const prompt = "schemey> "

// rootCmd runs a script file, or an interactive session when invoked with
// no arguments on a terminal.
var rootCmd = &cobra.Command{
	Use:   "schemey [file [args...]]",
	Short: "A small scheme-like lisp interpreter",
	Long: `Schemey interprets a small scheme-like language.  Given a file it
evaluates the file's expressions with any trailing arguments bound to the
list variable args.  With no arguments it starts an interactive session, or
evaluates standard input when it is not a terminal.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			if isatty.IsTerminal(os.Stdin.Fd()) {
				repl.Run(newEnv(nil), prompt)
				return
			}
			printResult(newEnv(nil).Load("stdin", os.Stdin))
			return
		}
		env := newEnv(args[1:])
		printResult(env.LoadFile(args[0]))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEnv builds a root environment with the standard runtime and reader.
// When scriptArgs is non-nil it is bound to the variable args as a list of
// strings for user code to consume.
func newEnv(scriptArgs []string) *lisp.LEnv {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env, lisp.WithReader(parser.NewReader()))
	if err := lisp.GoError(lerr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if scriptArgs != nil {
		cells := make([]*lisp.LVal, len(scriptArgs))
		for i, arg := range scriptArgs {
			cells[i] = lisp.String(arg)
		}
		env.Define("args", lisp.SExpr(cells))
	}
	return env
}

func printResult(v *lisp.LVal) {
	if err := lisp.GoError(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !v.IsNil() {
		fmt.Println(v)
	}
}
