package lisp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steshaw/schemey/lisp"
)

func TestEnvDefineGet(t *testing.T) {
	env := lisp.NewEnv(nil)
	assert.False(t, env.Bound("x"))

	v := env.Define("x", lisp.Int(1))
	assert.Equal(t, "1", v.String())
	assert.True(t, env.Bound("x"))
	assert.Equal(t, "1", env.Get("x").String())

	// Redefining overwrites the existing binding in place.
	env.Define("x", lisp.Int(2))
	assert.Equal(t, "2", env.Get("x").String())
}

func TestEnvUnbound(t *testing.T) {
	env := lisp.NewEnv(nil)

	v := env.Get("x")
	require.Equal(t, lisp.LError, v.Type)
	assert.Equal(t, "Getting an unbound variable: x", v.Err.Error())

	v = env.Set("x", lisp.Int(1))
	require.Equal(t, lisp.LError, v.Type)
	assert.Equal(t, "Setting an unbound variable: x", v.Err.Error())
}

func TestEnvExtendSnapshot(t *testing.T) {
	env := lisp.NewEnv(nil)
	env.Define("x", lisp.Int(1))

	child := env.Extend(nil, nil)
	assert.True(t, child.Bound("x"))

	// Bindings created in the parent after extension are invisible to the
	// child.
	env.Define("late", lisp.Int(9))
	assert.False(t, child.Bound("late"))
	assert.True(t, env.Bound("late"))
}

func TestEnvExtendSharedCells(t *testing.T) {
	env := lisp.NewEnv(nil)
	env.Define("x", lisp.Int(1))
	child := env.Extend(nil, nil)

	// set! in the child is visible in the parent because the cell is shared.
	child.Set("x", lisp.Int(2))
	assert.Equal(t, "2", env.Get("x").String())

	// And the other direction.
	env.Set("x", lisp.Int(3))
	assert.Equal(t, "3", child.Get("x").String())

	// Define on a visible name overwrites the shared cell too.
	child.Define("x", lisp.Int(4))
	assert.Equal(t, "4", env.Get("x").String())
}

func TestEnvExtendShadowing(t *testing.T) {
	env := lisp.NewEnv(nil)
	env.Define("x", lisp.Int(1))

	child := env.Extend([]string{"x"}, []*lisp.LVal{lisp.Int(10)})
	assert.Equal(t, "10", child.Get("x").String())
	assert.Equal(t, "1", env.Get("x").String())

	// The shadow binding has its own cell.
	child.Set("x", lisp.Int(11))
	assert.Equal(t, "11", child.Get("x").String())
	assert.Equal(t, "1", env.Get("x").String())
}

func TestEnvExtendShortValues(t *testing.T) {
	env := lisp.NewEnv(nil)
	child := env.Extend([]string{"a", "b"}, []*lisp.LVal{lisp.Int(1)})
	assert.True(t, child.Bound("a"))
	assert.False(t, child.Bound("b"))
}

func TestLoadRequiresReader(t *testing.T) {
	env := lisp.NewEnv(nil)
	v := env.LoadString("test", "(+ 1 2)")
	require.Equal(t, lisp.LError, v.Type)
	assert.Contains(t, v.Err.Error(), "no reader")
}

func TestMapLibrary(t *testing.T) {
	lib := lisp.MapLibrary{"a.scm": "(+ 1 2)"}

	src, err := lib.LoadSource("a.scm")
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 2)", string(src))

	_, err = lib.LoadSource("missing.scm")
	assert.Error(t, err)
}
