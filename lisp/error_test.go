package lisp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steshaw/schemey/lisp"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		v    *lisp.LVal
		want string
	}{
		{
			lisp.NumArgsError(2, nil),
			"expected 2 arguments (got 0)",
		},
		{
			lisp.NumArgsError(2, []*lisp.LVal{lisp.Int(1), lisp.Int(2), lisp.Int(3)}),
			"expected 2 arguments (got 3: 1 2 3)",
		},
		{
			lisp.TypeMismatchError("number", lisp.String("a")),
			`invalid type: expected number, got "a"`,
		},
		{
			lisp.BadSpecialFormError("Unrecognised special form", lisp.Nil()),
			"Unrecognised special form: ()",
		},
		{
			lisp.NotFunctionError("Not a function", lisp.Int(1)),
			"Not a function: 1",
		},
		{
			lisp.UnboundVarError("Getting an unbound variable", "x"),
			"Getting an unbound variable: x",
		},
		{
			lisp.Errorf("division by %s", "zero"),
			"division by zero",
		},
	}
	for _, test := range tests {
		require.Equal(t, lisp.LError, test.v.Type)
		assert.Equal(t, test.want, test.v.Err.Error())
		// Error values render as their message.
		assert.Equal(t, test.want, test.v.String())
	}
}

func TestParseError(t *testing.T) {
	err := lisp.ParseError("input.scm[12]", "unexpected text")
	assert.Equal(t, "parse error at input.scm[12]: unexpected text", err.Error())

	err = lisp.ParseError("", "no expression found")
	assert.Equal(t, "parse error: no expression found", err.Error())
}

func TestGoError(t *testing.T) {
	assert.NoError(t, lisp.GoError(lisp.Int(1)))
	assert.NoError(t, lisp.GoError(lisp.Nil()))

	v := lisp.Errorf("boom")
	err := lisp.GoError(v)
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}
