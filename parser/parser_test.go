package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steshaw/schemey/lisp"
	"github.com/steshaw/schemey/parser"
)

func readOne(t *testing.T, src string) *lisp.LVal {
	t.Helper()
	v, err := parser.ReadOne("test", []byte(src))
	require.NoError(t, err, "source: %s", src)
	return v
}

func TestReadAtoms(t *testing.T) {
	tests := []struct {
		src  string
		want *lisp.LVal
	}{
		{"42", lisp.Int(42)},
		{"0", lisp.Int(0)},
		{"#d42", lisp.Int(42)},
		{"#o17", lisp.Int(15)},
		{"#x1F", lisp.Int(31)},
		{"3.5", lisp.Float(3.5)},
		{"foo", lisp.Symbol("foo")},
		{"string->symbol", lisp.Symbol("string->symbol")},
		{"+", lisp.Symbol("+")},
		{"-5", lisp.Symbol("-5")}, // no signed number literals
		{"#t", lisp.Bool(true)},
		{"#f", lisp.Bool(false)},
		{"#true", lisp.Symbol("#true")}, // boolean literals are exact
		{`"hello"`, lisp.String("hello")},
		{`""`, lisp.String("")},
		{`#\a`, lisp.Char('a')},
		{`#\A`, lisp.Char('A')},
		{`#\(`, lisp.Char('(')},
		{`#\space`, lisp.Char(' ')},
		{`#\SPACE`, lisp.Char(' ')},
		{`#\newline`, lisp.Char('\n')},
		{`#\Newline`, lisp.Char('\n')},
	}
	for _, test := range tests {
		v := readOne(t, test.src)
		assert.True(t, lisp.Equal(test.want, v),
			"source %s: expected %s, got %s", test.src, test.want, v)
	}
}

func TestReadBinaryLiteralFails(t *testing.T) {
	_, err := parser.ReadOne("test", []byte("#b1010"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary number literals are not supported")
	lerr, ok := err.(*lisp.Error)
	require.True(t, ok)
	assert.Equal(t, lisp.ErrParse, lerr.Kind)
}

func TestReadStringEscapes(t *testing.T) {
	v := readOne(t, `"a\"b\nc\rd\te\\f"`)
	require.Equal(t, lisp.LString, v.Type)
	assert.Equal(t, "a\"b\nc\rd\te\\f", v.Str)
}

func TestReadStringBadEscape(t *testing.T) {
	_, err := parser.ReadOne("test", []byte(`"a\qb"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported escape sequence")
}

func TestReadLists(t *testing.T) {
	v := readOne(t, "(1 2 3)")
	want := lisp.SExpr([]*lisp.LVal{lisp.Int(1), lisp.Int(2), lisp.Int(3)})
	assert.True(t, lisp.Equal(want, v), "got %s", v)

	v = readOne(t, "()")
	assert.True(t, v.IsNil())

	v = readOne(t, "(a (b c) d)")
	assert.Equal(t, "(a (b c) d)", v.String())
}

func TestReadDottedLists(t *testing.T) {
	v := readOne(t, "(1 2 . 3)")
	require.Equal(t, lisp.LDottedList, v.Type)
	assert.Equal(t, "(1 2 . 3)", v.String())

	// A list tail folds back into a proper list.
	v = readOne(t, "(1 . (2 3))")
	require.Equal(t, lisp.LSExpr, v.Type)
	assert.Equal(t, "(1 2 3)", v.String())

	// A dotted tail folds into a longer dotted list.
	v = readOne(t, "(1 . (2 . 3))")
	require.Equal(t, lisp.LDottedList, v.Type)
	assert.Equal(t, "(1 2 . 3)", v.String())
}

func TestReadQuoteShorthand(t *testing.T) {
	v := readOne(t, "'x")
	want := lisp.Quote(lisp.Symbol("x"))
	assert.True(t, lisp.Equal(want, v), "got %s", v)

	v = readOne(t, "'(1 2)")
	want = lisp.Quote(lisp.SExpr([]*lisp.LVal{lisp.Int(1), lisp.Int(2)}))
	assert.True(t, lisp.Equal(want, v), "got %s", v)
}

func TestReadOneRejectsTrailingInput(t *testing.T) {
	_, err := parser.ReadOne("test", []byte("1 2"))
	assert.Error(t, err)

	_, err = parser.ReadOne("test", []byte("(1"))
	assert.Error(t, err)

	_, err = parser.ReadOne("test", []byte("(1))"))
	assert.Error(t, err)

	_, err = parser.ReadOne("test", []byte(""))
	assert.Error(t, err)
}

func TestReadAll(t *testing.T) {
	vs, err := parser.ReadAll("test", []byte("(define x 1)\n(+ x 2)"))
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "(define x 1)", vs[0].String())
	assert.Equal(t, "(+ x 2)", vs[1].String())

	vs, err = parser.ReadAll("test", []byte("   "))
	require.NoError(t, err)
	assert.Len(t, vs, 0)
}

func TestReadAllReportsLocation(t *testing.T) {
	_, err := parser.ReadAll("input.scm", []byte("(+ 1 2) )"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input.scm")
}

// Rendered canonical forms parse back to structurally equal values.
func TestRenderReadRoundTrip(t *testing.T) {
	sources := []string{
		"42",
		"#o17",
		"3.5",
		"sym",
		"#t",
		"#f",
		`"hi\nthere"`,
		`#\a`,
		`#\space`,
		`#\newline`,
		"()",
		"(1 2 3)",
		"(1 2 . 3)",
		`(a "b" #\c 4.5 (6 . 7))`,
		"'(quoted list)",
	}
	for _, src := range sources {
		v := readOne(t, src)
		again, err := parser.ReadOne("test", []byte(v.String()))
		require.NoError(t, err, "rendering of %s: %s", src, v)
		assert.True(t, lisp.Equal(v, again),
			"round trip of %s: %s != %s", src, v, again)
	}
}
