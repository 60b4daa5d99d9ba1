package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// LType is the type of an LVal.
type LType uint

// Possible LType values.
const (
	LInvalid LType = iota
	LSymbol
	LInt
	LFloat
	LChar
	LString
	LBool
	LSExpr
	LDottedList
	LFun
	LError
)

var ltypeStrings = []string{
	LInvalid:    "INVALID",
	LSymbol:     "symbol",
	LInt:        "integer",
	LFloat:      "float",
	LChar:       "character",
	LString:     "string",
	LBool:       "boolean",
	LSExpr:      "list",
	LDottedList: "dotted-list",
	LFun:        "function",
	LError:      "error",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// LBuiltin is a native function that implements a lisp primitive.
type LBuiltin func(env *LEnv, args []*LVal) *LVal

// LVal is a lisp value.
type LVal struct {
	Type  LType
	Str   string // symbol name or string contents
	Int   int
	Float float64
	Char  rune
	Bool  bool
	Cells []*LVal
	Tail  *LVal  // dotted-list terminal, never a list
	Err   *Error // error values

	// Fields needed for function values.
	Builtin  LBuiltin
	Formals  []string
	Variadic string // variadic parameter name, "" when absent
	Body     []*LVal
	Env      *LEnv
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{Type: LSymbol, Str: s}
}

// Int returns an LVal representing the integer x.
func Int(x int) *LVal {
	return &LVal{Type: LInt, Int: x}
}

// Float returns an LVal representing the floating point number x.
func Float(x float64) *LVal {
	return &LVal{Type: LFloat, Float: x}
}

// Char returns an LVal representing the character c.
func Char(c rune) *LVal {
	return &LVal{Type: LChar, Char: c}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{Type: LString, Str: s}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{Type: LBool, Bool: b}
}

// Nil returns an LVal representing the empty list, which doubles as the
// interpreter's unit value.
func Nil() *LVal {
	return SExpr(nil)
}

// SExpr returns a list LVal with the given cells.
func SExpr(cells []*LVal) *LVal {
	return &LVal{Type: LSExpr, Cells: cells}
}

// DottedList returns an improper list with the given head cells and tail.
// List and dotted-list tails are normalized away so the tail of the returned
// value is never itself a list; (a . (b c)) reads equal to (a b c).
func DottedList(cells []*LVal, tail *LVal) *LVal {
	switch tail.Type {
	case LSExpr:
		joined := make([]*LVal, 0, len(cells)+len(tail.Cells))
		joined = append(joined, cells...)
		joined = append(joined, tail.Cells...)
		return SExpr(joined)
	case LDottedList:
		joined := make([]*LVal, 0, len(cells)+len(tail.Cells))
		joined = append(joined, cells...)
		joined = append(joined, tail.Cells...)
		return &LVal{Type: LDottedList, Cells: joined, Tail: tail.Tail}
	default:
		return &LVal{Type: LDottedList, Cells: cells, Tail: tail}
	}
}

// Fun returns an LVal wrapping the native function fn.
func Fun(fn LBuiltin) *LVal {
	return &LVal{Type: LFun, Builtin: fn}
}

// Lambda returns a closure over the given parameters and body capturing env.
// The variadic name may be empty.  The body must contain at least one
// expression; the evaluator enforces this before construction.
func Lambda(formals []string, variadic string, body []*LVal, env *LEnv) *LVal {
	return &LVal{
		Type:     LFun,
		Formals:  formals,
		Variadic: variadic,
		Body:     body,
		Env:      env,
	}
}

// IsNil returns true if v is the empty list.
func (v *LVal) IsNil() bool {
	return v.Type == LSExpr && len(v.Cells) == 0
}

// Quote wraps v in a (quote ...) form, the expansion of the reader's '
// shorthand.
func Quote(v *LVal) *LVal {
	return SExpr([]*LVal{Symbol("quote"), v})
}

// Equal computes deep structural equality of two values.  There is no
// identity-based equality distinct from it; eq?, eqv? and equal? all reduce
// to Equal.  Function and error values are only equal to themselves.
func Equal(a, b *LVal) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LSymbol:
		return a.Str == b.Str
	case LInt:
		return a.Int == b.Int
	case LFloat:
		return a.Float == b.Float
	case LChar:
		return a.Char == b.Char
	case LString:
		return a.Str == b.Str
	case LBool:
		return a.Bool == b.Bool
	case LSExpr:
		return equalCells(a.Cells, b.Cells)
	case LDottedList:
		return equalCells(a.Cells, b.Cells) && Equal(a.Tail, b.Tail)
	default:
		return a == b
	}
}

func equalCells(a, b []*LVal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// String renders v in its canonical textual form.  Rendered atoms and lists
// read back as equal values; function values render as opaque placeholders.
func (v *LVal) String() string {
	switch v.Type {
	case LSymbol:
		return v.Str
	case LInt:
		return strconv.Itoa(v.Int)
	case LFloat:
		return formatFloat(v.Float)
	case LChar:
		return formatChar(v.Char)
	case LString:
		return strconv.Quote(v.Str)
	case LBool:
		if v.Bool {
			return "#t"
		}
		return "#f"
	case LSExpr:
		return exprString(v.Cells, "")
	case LDottedList:
		return exprString(v.Cells, " . "+v.Tail.String())
	case LFun:
		if v.Builtin != nil {
			return "<builtin>"
		}
		return fmt.Sprintf("(lambda %s ...)", formatFormals(v.Formals, v.Variadic))
	case LError:
		return v.Err.Error()
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func formatFloat(f float64) string {
	// Floats are read at single precision, so render the shortest digit
	// string that survives a 32-bit round trip.
	s := strconv.FormatFloat(f, 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		// Keep a decimal point so the rendering reads back as a float.
		s += ".0"
	}
	return s
}

func formatChar(c rune) string {
	switch c {
	case ' ':
		return `#\space`
	case '\n':
		return `#\newline`
	default:
		return `#\` + string(c)
	}
}

func formatFormals(formals []string, variadic string) string {
	if len(formals) == 0 && variadic != "" {
		return variadic
	}
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(strings.Join(formals, " "))
	if variadic != "" {
		buf.WriteString(" . ")
		buf.WriteString(variadic)
	}
	buf.WriteString(")")
	return buf.String()
}

func exprString(cells []*LVal, suffix string) string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(suffix)
	buf.WriteString(")")
	return buf.String()
}
