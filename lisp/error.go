package lisp

import (
	"fmt"
	"strings"
)

// ErrKind discriminates the closed set of interpreter error conditions.
type ErrKind uint

// Possible ErrKind values.
const (
	ErrGeneric ErrKind = iota
	ErrNumArgs
	ErrTypeMismatch
	ErrParse
	ErrBadSpecialForm
	ErrNotFunction
	ErrUnboundVar
)

// Error is an interpreter error.  Errors are carried through evaluation as
// LError-typed LVal values and short-circuit the enclosing top-level
// expression; GoError unwraps them at program boundaries.
type Error struct {
	Kind     ErrKind
	Msg      string  // context message (BadSpecialForm, NotFunction, UnboundVar, Generic)
	Expected int     // expected argument count (NumArgs)
	Want     string  // expected type or kind (TypeMismatch)
	Name     string  // offending variable name (UnboundVar)
	Loc      string  // source location (Parse)
	Val      *LVal   // offending value or syntax
	Args     []*LVal // offending argument values (NumArgs)
}

// Error implements the error interface with a single descriptive line.
func (e *Error) Error() string {
	switch e.Kind {
	case ErrNumArgs:
		return fmt.Sprintf("expected %d arguments (got %d%s)",
			e.Expected, len(e.Args), valuesSuffix(e.Args))
	case ErrTypeMismatch:
		return fmt.Sprintf("invalid type: expected %s, got %s", e.Want, e.Val)
	case ErrParse:
		if e.Loc == "" {
			return "parse error: " + e.Msg
		}
		return fmt.Sprintf("parse error at %s: %s", e.Loc, e.Msg)
	case ErrBadSpecialForm, ErrNotFunction:
		return fmt.Sprintf("%s: %s", e.Msg, e.Val)
	case ErrUnboundVar:
		return fmt.Sprintf("%s: %s", e.Msg, e.Name)
	default:
		return e.Msg
	}
}

func valuesSuffix(args []*LVal) string {
	if len(args) == 0 {
		return ""
	}
	strs := make([]string, len(args))
	for i, v := range args {
		strs[i] = v.String()
	}
	return ": " + strings.Join(strs, " ")
}

// ErrorVal wraps e in an LError-typed LVal.
func ErrorVal(e *Error) *LVal {
	return &LVal{Type: LError, Err: e}
}

// Errorf returns a generic error value with a formatted message.
func Errorf(format string, v ...interface{}) *LVal {
	return ErrorVal(&Error{Kind: ErrGeneric, Msg: fmt.Sprintf(format, v...)})
}

// NumArgsError returns an error value reporting an arity violation.
func NumArgsError(expected int, args []*LVal) *LVal {
	return ErrorVal(&Error{Kind: ErrNumArgs, Expected: expected, Args: args})
}

// TypeMismatchError returns an error value reporting an argument of the
// wrong type.
func TypeMismatchError(want string, v *LVal) *LVal {
	return ErrorVal(&Error{Kind: ErrTypeMismatch, Want: want, Val: v})
}

// ParseError returns an error reporting malformed source text.  It is
// returned as a plain error because reader failures surface before any
// evaluation begins.
func ParseError(loc, msg string) *Error {
	return &Error{Kind: ErrParse, Loc: loc, Msg: msg}
}

// BadSpecialFormError returns an error value reporting syntax that matches
// no special form or application shape.
func BadSpecialFormError(msg string, v *LVal) *LVal {
	return ErrorVal(&Error{Kind: ErrBadSpecialForm, Msg: msg, Val: v})
}

// NotFunctionError returns an error value reporting an application of a
// non-function value.
func NotFunctionError(msg string, v *LVal) *LVal {
	return ErrorVal(&Error{Kind: ErrNotFunction, Msg: msg, Val: v})
}

// UnboundVarError returns an error value reporting a reference to an
// unbound variable.
func UnboundVarError(msg, name string) *LVal {
	return ErrorVal(&Error{Kind: ErrUnboundVar, Msg: msg, Name: name})
}

// GoError returns the Error held by v, or nil when v is not an error value.
func GoError(v *LVal) error {
	if v.Type == LError {
		return v.Err
	}
	return nil
}
