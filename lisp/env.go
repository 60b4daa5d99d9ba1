package lisp

import (
	"io"
	"os"
	"strings"
	"time"
)

// Reader parses lisp source into a sequence of unevaluated values.  It is an
// interface so the parser package can supply the implementation without an
// import cycle.
type Reader interface {
	Read(name string, r io.Reader) ([]*LVal, error)
}

// SourceLibrary resolves load locations to raw source text.  The evaluator
// never touches the filesystem directly.
type SourceLibrary interface {
	LoadSource(loc string) ([]byte, error)
}

// OSLibrary loads source files from the operating system's filesystem.
type OSLibrary struct{}

// LoadSource implements SourceLibrary.
func (lib OSLibrary) LoadSource(loc string) ([]byte, error) {
	return os.ReadFile(loc)
}

// MapLibrary is an in-memory SourceLibrary keyed by location, used by tests
// and embedded interpreters.
type MapLibrary map[string]string

// LoadSource implements SourceLibrary.
func (lib MapLibrary) LoadSource(loc string) ([]byte, error) {
	src, ok := lib[loc]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(src), nil
}

// Runtime holds the external collaborators of an environment tree: where
// print writes, how load resolves and parses source, and how sleep blocks.
// Every environment extended from a root shares the root's Runtime.
type Runtime struct {
	Stdout  io.Writer
	Library SourceLibrary
	Reader  Reader
	Sleep   func(time.Duration)
}

// StandardRuntime returns a Runtime wired to the host process: standard
// output, filesystem source loading and real clock sleeps.  The Reader must
// be configured separately (see WithReader).
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout:  os.Stdout,
		Library: OSLibrary{},
		Sleep:   time.Sleep,
	}
}

// cell is a mutable storage location holding one value.  Cells are shared by
// reference between environment frames, which is what gives set! its
// cross-frame aliasing semantics.
type cell struct {
	val *LVal
}

type binding struct {
	name string
	cell *cell
}

// LEnv is a lisp environment: an ordered sequence of name/cell bindings,
// newest first.  Extension snapshots the parent's bindings into the child
// rather than holding a live parent pointer, so bindings created in a parent
// after a child was built are invisible to that child even though
// pre-existing cells still alias.
type LEnv struct {
	vars    []binding
	Runtime *Runtime
}

// NewEnv initializes and returns a new root LEnv.  When rt is nil a
// StandardRuntime is created for the environment.
func NewEnv(rt *Runtime) *LEnv {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &LEnv{Runtime: rt}
}

// Bound reports whether name has a binding visible from env.
func (env *LEnv) Bound(name string) bool {
	return env.lookup(name) != nil
}

func (env *LEnv) lookup(name string) *cell {
	for i := range env.vars {
		if env.vars[i].name == name {
			return env.vars[i].cell
		}
	}
	return nil
}

// Get returns the value bound to name in env.
func (env *LEnv) Get(name string) *LVal {
	c := env.lookup(name)
	if c == nil {
		return UnboundVarError("Getting an unbound variable", name)
	}
	return c.val
}

// Set mutates the cell already bound to name and returns the value.  The
// mutation is visible from every frame sharing the cell.
func (env *LEnv) Set(name string, v *LVal) *LVal {
	c := env.lookup(name)
	if c == nil {
		return UnboundVarError("Setting an unbound variable", name)
	}
	c.val = v
	return v
}

// Define binds name to v.  An existing visible binding is overwritten in
// place; otherwise a fresh binding is created in the current frame, shadowing
// nothing and invisible to frames extended earlier.
func (env *LEnv) Define(name string, v *LVal) *LVal {
	if c := env.lookup(name); c != nil {
		c.val = v
		return v
	}
	env.vars = append([]binding{{name, &cell{v}}}, env.vars...)
	return v
}

// Extend builds a child environment binding each name to the corresponding
// value in fresh cells, followed by a snapshot of env's current bindings.
// The parent's cells are shared by reference, not copied.
func (env *LEnv) Extend(names []string, vals []*LVal) *LEnv {
	n := len(names)
	if len(vals) < n {
		n = len(vals)
	}
	vars := make([]binding, 0, n+len(env.vars))
	for i := 0; i < n; i++ {
		vars = append(vars, binding{names[i], &cell{vals[i]}})
	}
	vars = append(vars, env.vars...)
	return &LEnv{vars: vars, Runtime: env.Runtime}
}

// AddBuiltins binds the given function definitions in env.  When called with
// no arguments AddBuiltins adds the DefaultBuiltins.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		env.Define(f.Name(), Fun(f.Eval))
	}
}

// InitializeUserEnv populates a root environment with the builtin library
// and applies any configuration options.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	env.AddBuiltins()
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	return Nil()
}

// LoadString parses and evaluates source in env, returning the value of the
// last expression.
func (env *LEnv) LoadString(name, source string) *LVal {
	return env.Load(name, strings.NewReader(source))
}

// Load reads expressions from r and evaluates them in order in env.  The
// value of the last expression is returned; an empty stream yields the unit
// value.  The first error stops evaluation of the remaining expressions.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		if lerr, ok := err.(*Error); ok {
			return ErrorVal(lerr)
		}
		return Errorf("%s", err)
	}
	ret := Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}

// LoadFile resolves loc through the runtime's source library and evaluates
// its contents in env.  Top-level defines in the loaded source persist in
// env; this is also the entry point backing the load special form.
func (env *LEnv) LoadFile(loc string) *LVal {
	if env.Runtime.Library == nil {
		return Errorf("no source library in environment runtime")
	}
	src, err := env.Runtime.Library.LoadSource(loc)
	if err != nil {
		return Errorf("load: %s: %s", loc, err)
	}
	return env.Load(loc, strings.NewReader(string(src)))
}
