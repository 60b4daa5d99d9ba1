package lisp

import (
	"fmt"
	"time"
)

// LBuiltinDef is a named builtin function definition.
type LBuiltinDef interface {
	Name() string
	Eval(env *LEnv, args []*LVal) *LVal
}

type langBuiltin struct {
	name string
	fun  LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(env *LEnv, args []*LVal) *LVal {
	return fun.fun(env, args)
}

var langBuiltins = []*langBuiltin{
	{"+", arithFold(func(a, b int) (int, *LVal) { return a + b, nil })},
	{"-", arithFold(func(a, b int) (int, *LVal) { return a - b, nil })},
	{"*", arithFold(func(a, b int) (int, *LVal) { return a * b, nil })},
	{"/", arithFold(intQuot)},
	{"mod", arithFold(intMod)},
	{"quotient", arithFold(intQuot)},
	{"remainder", arithFold(intRem)},
	{"=", numBoolBinop(func(a, b int) bool { return a == b })},
	{"<", numBoolBinop(func(a, b int) bool { return a < b })},
	{">", numBoolBinop(func(a, b int) bool { return a > b })},
	{"/=", numBoolBinop(func(a, b int) bool { return a != b })},
	{">=", numBoolBinop(func(a, b int) bool { return a >= b })},
	{"<=", numBoolBinop(func(a, b int) bool { return a <= b })},
	{"&&", boolBoolBinop(func(a, b bool) bool { return a && b })},
	{"||", boolBoolBinop(func(a, b bool) bool { return a || b })},
	{"string=?", strBoolBinop(func(a, b string) bool { return a == b })},
	{"string<?", strBoolBinop(func(a, b string) bool { return a < b })},
	{"string>?", strBoolBinop(func(a, b string) bool { return a > b })},
	{"string<=?", strBoolBinop(func(a, b string) bool { return a <= b })},
	{"string>=?", strBoolBinop(func(a, b string) bool { return a >= b })},
	{"symbol?", typePredicate(LSymbol)},
	{"boolean?", typePredicate(LBool)},
	{"number?", typePredicate(LInt)},
	{"real?", typePredicate(LFloat)},
	{"char?", typePredicate(LChar)},
	{"string?", typePredicate(LString)},
	{"list?", typePredicate(LSExpr)},
	{"null?", builtinIsNull},
	{"symbol->string", builtinSymbolToString},
	{"string->symbol", builtinStringToSymbol},
	{"car", builtinCAR},
	{"cdr", builtinCDR},
	{"cons", builtinCons},
	{"length", builtinLength},
	{"eq?", builtinEqual},
	{"eqv?", builtinEqual},
	{"equal?", builtinEqual},
	{"string-ref", builtinStringRef},
	{"apply", builtinApply},
	{"print", builtinPrint},
	{"sleep", builtinSleep},
}

// DefaultBuiltins returns the set of LBuiltinDefs installed into root
// environments by AddBuiltins.  The table is fixed; rebinding the same names
// with define or set! shadows them like any other variable.
func DefaultBuiltins() []LBuiltinDef {
	funs := make([]LBuiltinDef, len(langBuiltins))
	for i := range langBuiltins {
		funs[i] = langBuiltins[i]
	}
	return funs
}

// arithFold builds a builtin that left-folds op over one or more integers.
// Division-like operators report zero divisors through op's error result.
func arithFold(op func(a, b int) (int, *LVal)) LBuiltin {
	return func(env *LEnv, args []*LVal) *LVal {
		if len(args) == 0 {
			return NumArgsError(1, args)
		}
		for _, v := range args {
			if v.Type != LInt {
				return TypeMismatchError("number", v)
			}
		}
		acc := args[0].Int
		for _, v := range args[1:] {
			var lerr *LVal
			acc, lerr = op(acc, v.Int)
			if lerr != nil {
				return lerr
			}
		}
		return Int(acc)
	}
}

// intQuot is Go integer division: the quotient truncates toward zero.
func intQuot(a, b int) (int, *LVal) {
	if b == 0 {
		return 0, Errorf("division by zero")
	}
	return a / b, nil
}

// intRem is Go's % operator: the remainder takes the sign of the dividend.
func intRem(a, b int) (int, *LVal) {
	if b == 0 {
		return 0, Errorf("division by zero")
	}
	return a % b, nil
}

// intMod is floored modulo: the result takes the sign of the divisor.
func intMod(a, b int) (int, *LVal) {
	if b == 0 {
		return 0, Errorf("division by zero")
	}
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m, nil
}

func numBoolBinop(op func(a, b int) bool) LBuiltin {
	return func(env *LEnv, args []*LVal) *LVal {
		if len(args) != 2 {
			return NumArgsError(2, args)
		}
		for _, v := range args {
			if v.Type != LInt {
				return TypeMismatchError("number", v)
			}
		}
		return Bool(op(args[0].Int, args[1].Int))
	}
}

func strBoolBinop(op func(a, b string) bool) LBuiltin {
	return func(env *LEnv, args []*LVal) *LVal {
		if len(args) != 2 {
			return NumArgsError(2, args)
		}
		for _, v := range args {
			if v.Type != LString {
				return TypeMismatchError("string", v)
			}
		}
		return Bool(op(args[0].Str, args[1].Str))
	}
}

func boolBoolBinop(op func(a, b bool) bool) LBuiltin {
	return func(env *LEnv, args []*LVal) *LVal {
		if len(args) != 2 {
			return NumArgsError(2, args)
		}
		for _, v := range args {
			if v.Type != LBool {
				return TypeMismatchError("boolean", v)
			}
		}
		return Bool(op(args[0].Bool, args[1].Bool))
	}
}

// typePredicate builds a one-argument predicate that never fails on any
// value.
func typePredicate(t LType) LBuiltin {
	return func(env *LEnv, args []*LVal) *LVal {
		if len(args) != 1 {
			return NumArgsError(1, args)
		}
		return Bool(args[0].Type == t)
	}
}

func builtinIsNull(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return NumArgsError(1, args)
	}
	return Bool(args[0].IsNil())
}

func builtinSymbolToString(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return NumArgsError(1, args)
	}
	if args[0].Type != LSymbol {
		return TypeMismatchError("symbol", args[0])
	}
	return String(args[0].Str)
}

func builtinStringToSymbol(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return NumArgsError(1, args)
	}
	if args[0].Type != LString {
		return TypeMismatchError("string", args[0])
	}
	return Symbol(args[0].Str)
}

func builtinCAR(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return NumArgsError(1, args)
	}
	v := args[0]
	switch {
	case v.Type == LSExpr && len(v.Cells) > 0:
		return v.Cells[0]
	case v.Type == LDottedList:
		return v.Cells[0]
	default:
		return TypeMismatchError("pair", v)
	}
}

func builtinCDR(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return NumArgsError(1, args)
	}
	v := args[0]
	switch {
	case v.Type == LSExpr && len(v.Cells) > 0:
		return SExpr(v.Cells[1:])
	case v.Type == LDottedList:
		if len(v.Cells) == 1 {
			return v.Tail
		}
		return DottedList(v.Cells[1:], v.Tail)
	default:
		return TypeMismatchError("pair", v)
	}
}

func builtinCons(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return NumArgsError(2, args)
	}
	// DottedList folds a list tail into a longer proper list and any other
	// tail into an improper pair.
	return DottedList([]*LVal{args[0]}, args[1])
}

func builtinLength(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return NumArgsError(1, args)
	}
	if args[0].Type != LSExpr {
		return TypeMismatchError("list", args[0])
	}
	return Int(len(args[0].Cells))
}

func builtinEqual(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return NumArgsError(2, args)
	}
	return Bool(Equal(args[0], args[1]))
}

func builtinStringRef(env *LEnv, args []*LVal) *LVal {
	if len(args) != 2 {
		return NumArgsError(2, args)
	}
	if args[0].Type != LString {
		return TypeMismatchError("string", args[0])
	}
	if args[1].Type != LInt {
		return TypeMismatchError("number", args[1])
	}
	s := []rune(args[0].Str)
	i := args[1].Int
	if i < 0 || i >= len(s) {
		return Errorf("string index out of range: %d (length %d)", i, len(s))
	}
	return Char(s[i])
}

// builtinApply re-enters the evaluator's application path.  With exactly one
// trailing list argument the list's elements become the argument vector;
// otherwise the remaining arguments are passed through as-is.
func builtinApply(env *LEnv, args []*LVal) *LVal {
	if len(args) < 1 {
		return NumArgsError(1, args)
	}
	f := args[0]
	rest := args[1:]
	if len(rest) == 1 && rest[0].Type == LSExpr {
		rest = rest[0].Cells
	}
	return env.Apply(f, rest)
}

func builtinPrint(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return NumArgsError(1, args)
	}
	fmt.Fprintln(env.Runtime.Stdout, args[0])
	return Nil()
}

func builtinSleep(env *LEnv, args []*LVal) *LVal {
	if len(args) != 1 {
		return NumArgsError(1, args)
	}
	if args[0].Type != LInt {
		return TypeMismatchError("number", args[0])
	}
	env.Runtime.Sleep(time.Duration(args[0].Int) * time.Second)
	return Nil()
}
