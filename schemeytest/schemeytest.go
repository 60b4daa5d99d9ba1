// Package schemeytest provides a declarative harness for interpreter tests.
// Suites list source expressions alongside the canonical rendering of the
// value (or error) they should produce, evaluated in order against a shared
// environment that is rebuilt for each sequence.
package schemeytest

import (
	"testing"

	"github.com/steshaw/schemey/lisp"
	"github.com/steshaw/schemey/parser"
)

// TestChange is a single source expression and its expected rendered result.
// Expressions evaluating to the unit value expect "()"; failing expressions
// expect the error's one-line rendering.
type TestChange struct {
	Expr   string
	Result string
}

// TestSequence is an ordered list of evaluations sharing one environment, so
// earlier defines and set!s are visible to later expressions.
type TestSequence []TestChange

// TestSpec is a named test sequence.
type TestSpec struct {
	Name  string
	Tests TestSequence
}

// TestSuite is a set of named test sequences.
type TestSuite []TestSpec

// Runner runs test suites.  Config entries are applied to each fresh
// environment after the reader is installed.
type Runner struct {
	Config []lisp.Config
}

// NewEnv returns a fresh interpreter environment for one test sequence.
func (r *Runner) NewEnv(t *testing.T) *lisp.LEnv {
	t.Helper()
	env := lisp.NewEnv(nil)
	config := append([]lisp.Config{lisp.WithReader(parser.NewReader())}, r.Config...)
	lerr := lisp.InitializeUserEnv(env, config...)
	if err := lisp.GoError(lerr); err != nil {
		t.Fatalf("failed to initialize environment: %v", err)
	}
	return env
}

// RunTestSuite evaluates every sequence in tests against its own
// environment.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			env := r.NewEnv(t)
			for i, step := range test.Tests {
				result := EvalString(env, step.Expr)
				if result != step.Result {
					t.Errorf("expression %d: %s\n\texpected: %s\n\tgot:      %s",
						i, step.Expr, step.Result, result)
				}
			}
		})
	}
}

// EvalString parses and evaluates src in env and returns the rendering of
// the final value.  Parse and evaluation errors render as their one-line
// message.
func EvalString(env *lisp.LEnv, src string) string {
	exprs, err := parser.ReadAll("test", []byte(src))
	if err != nil {
		return err.Error()
	}
	ret := lisp.Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == lisp.LError {
			break
		}
	}
	return ret.String()
}

// RunTestSuite evaluates tests with a default Runner.
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{}
	r.RunTestSuite(t, tests)
}
