package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/steshaw/schemey/lisp"
	"github.com/steshaw/schemey/parser"
)

// Run reads expressions interactively and evaluates them in env.  Input
// continues across lines until every open list and string is closed.  An
// interrupt discards the pending buffer; EOF ends the session.  Values are
// printed in canonical form with top-level unit results suppressed, and
// errors are rendered as a single line on stderr.
func Run(env *lisp.LEnv, prompt string) {
	rl, err := readline.New(prompt)
	if err != nil {
		errln(err)
		return
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			if err != io.EOF {
				errln(err)
			}
			return
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, line...)
		if incomplete(buf) {
			rl.SetPrompt(contPrompt)
			continue
		}
		text := buf
		buf = nil
		rl.SetPrompt(prompt)
		evalText(env, text)
	}
}

func evalText(env *lisp.LEnv, text []byte) {
	exprs, err := parser.ReadAll("repl", text)
	if err != nil {
		errln(err)
		return
	}
	for _, expr := range exprs {
		v := env.Eval(expr)
		if err := lisp.GoError(v); err != nil {
			errln(err)
			return
		}
		if !v.IsNil() {
			fmt.Println(v)
		}
	}
}

// incomplete reports whether text ends inside an unterminated list or
// string, in which case the reader should wait for more lines before
// parsing.
func incomplete(text []byte) bool {
	depth := 0
	inStr := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inStr {
			switch c {
			case '\\':
				i++
			case '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth > 0 || inStr
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
