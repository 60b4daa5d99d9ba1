package lisp

import (
	"io"
	"time"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdout returns a Config that makes the print builtin write to w
// instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithLibrary returns a Config that makes environments resolve load
// locations through lib.
func WithLibrary(lib SourceLibrary) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Library = lib
		return Nil()
	}
}

// WithSleep returns a Config that makes the sleep builtin call fn instead of
// time.Sleep.
func WithSleep(fn func(time.Duration)) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Sleep = fn
		return Nil()
	}
}
