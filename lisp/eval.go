package lisp

const badFormMsg = "Unrecognised special form"

// Eval evaluates v in the scope of env and returns the resulting LVal.
// Scalar atoms are self-evaluating, symbols are variable references and
// lists are special forms or applications.  Anything else is a syntax error.
func (env *LEnv) Eval(v *LVal) *LVal {
	switch v.Type {
	case LInt, LFloat, LChar, LString, LBool:
		return v
	case LSymbol:
		return env.Get(v.Str)
	case LSExpr:
		return env.evalSExpr(v)
	case LError:
		return v
	default:
		return BadSpecialFormError(badFormMsg, v)
	}
}

// evalSExpr dispatches a compound form.  Special-form keywords are matched
// structurally before generic application; a keyword form with the wrong
// shape is a syntax error rather than an arity error.
func (env *LEnv) evalSExpr(s *LVal) *LVal {
	if len(s.Cells) == 0 {
		return BadSpecialFormError(badFormMsg, s)
	}
	if head := s.Cells[0]; head.Type == LSymbol {
		switch head.Str {
		case "quote":
			return evalQuote(env, s)
		case "if":
			return evalIf(env, s)
		case "set!":
			return evalSet(env, s)
		case "define":
			return evalDefine(env, s)
		case "lambda":
			return evalLambda(env, s)
		case "load":
			return evalLoad(env, s)
		}
	}
	f := env.Eval(s.Cells[0])
	if f.Type == LError {
		return f
	}
	args := make([]*LVal, len(s.Cells)-1)
	for i, c := range s.Cells[1:] {
		args[i] = env.Eval(c)
		if args[i].Type == LError {
			return args[i]
		}
	}
	return env.Apply(f, args)
}

func evalQuote(env *LEnv, s *LVal) *LVal {
	if len(s.Cells) != 2 {
		return BadSpecialFormError(badFormMsg, s)
	}
	return s.Cells[1]
}

// evalIf evaluates the test and selects a branch.  Only boolean true takes
// the then-branch; every other value, boolean false included, takes the
// else-branch.
func evalIf(env *LEnv, s *LVal) *LVal {
	if len(s.Cells) != 4 {
		return BadSpecialFormError(badFormMsg, s)
	}
	test := env.Eval(s.Cells[1])
	if test.Type == LError {
		return test
	}
	if test.Type == LBool && test.Bool {
		return env.Eval(s.Cells[2])
	}
	return env.Eval(s.Cells[3])
}

func evalSet(env *LEnv, s *LVal) *LVal {
	if len(s.Cells) != 3 || s.Cells[1].Type != LSymbol {
		return BadSpecialFormError(badFormMsg, s)
	}
	v := env.Eval(s.Cells[2])
	if v.Type == LError {
		return v
	}
	return env.Set(s.Cells[1].Str, v)
}

func evalDefine(env *LEnv, s *LVal) *LVal {
	if len(s.Cells) < 3 {
		return BadSpecialFormError(badFormMsg, s)
	}
	target := s.Cells[1]
	switch target.Type {
	case LSymbol:
		if len(s.Cells) != 3 {
			return BadSpecialFormError(badFormMsg, s)
		}
		v := env.Eval(s.Cells[2])
		if v.Type == LError {
			return v
		}
		return env.Define(target.Str, v)
	case LSExpr, LDottedList:
		// (define (name params...) body...) and the variadic
		// (define (name params... . rest) body...) sugar.
		if len(target.Cells) == 0 || target.Cells[0].Type != LSymbol {
			return BadSpecialFormError(badFormMsg, s)
		}
		name := target.Cells[0].Str
		params := SExpr(target.Cells[1:])
		if target.Type == LDottedList {
			params = DottedList(target.Cells[1:], target.Tail)
		}
		fun := makeLambda(env, s, params, s.Cells[2:])
		if fun.Type == LError {
			return fun
		}
		return env.Define(name, fun)
	default:
		return BadSpecialFormError(badFormMsg, s)
	}
}

func evalLambda(env *LEnv, s *LVal) *LVal {
	if len(s.Cells) < 3 {
		return BadSpecialFormError(badFormMsg, s)
	}
	return makeLambda(env, s, s.Cells[1], s.Cells[2:])
}

// makeLambda constructs a closure capturing env.  The params value is a list
// of symbols, a dotted list of symbols, or a single symbol binding the whole
// argument list.  The body must be non-empty, which the callers check.
func makeLambda(env *LEnv, s *LVal, params *LVal, body []*LVal) *LVal {
	var formals []string
	variadic := ""
	switch params.Type {
	case LSymbol:
		variadic = params.Str
	case LSExpr:
		names, ok := symbolNames(params.Cells)
		if !ok {
			return BadSpecialFormError(badFormMsg, s)
		}
		formals = names
	case LDottedList:
		names, ok := symbolNames(params.Cells)
		if !ok || params.Tail.Type != LSymbol {
			return BadSpecialFormError(badFormMsg, s)
		}
		formals = names
		variadic = params.Tail.Str
	default:
		return BadSpecialFormError(badFormMsg, s)
	}
	return Lambda(formals, variadic, body, env)
}

func symbolNames(cells []*LVal) ([]string, bool) {
	names := make([]string, len(cells))
	for i, c := range cells {
		if c.Type != LSymbol {
			return nil, false
		}
		names[i] = c.Str
	}
	return names, true
}

// evalLoad reads the named file through the runtime's source library and
// evaluates each expression in env itself, so top-level defines in the
// loaded file persist in the calling environment.
func evalLoad(env *LEnv, s *LVal) *LVal {
	if len(s.Cells) != 2 || s.Cells[1].Type != LString {
		return BadSpecialFormError(badFormMsg, s)
	}
	return env.LoadFile(s.Cells[1].Str)
}

// Apply invokes the function f with the given evaluated arguments.
func (env *LEnv) Apply(f *LVal, args []*LVal) *LVal {
	if f.Type != LFun {
		return NotFunctionError("Not a function", f)
	}
	if f.Builtin != nil {
		return f.Builtin(env, args)
	}
	if len(args) != len(f.Formals) && f.Variadic == "" {
		return NumArgsError(len(f.Formals), args)
	}
	nbind := len(f.Formals)
	if len(args) < nbind {
		nbind = len(args)
	}
	names := make([]string, 0, nbind+1)
	vals := make([]*LVal, 0, nbind+1)
	names = append(names, f.Formals[:nbind]...)
	vals = append(vals, args[:nbind]...)
	if f.Variadic != "" {
		var rest []*LVal
		if len(args) > len(f.Formals) {
			rest = append(rest, args[len(f.Formals):]...)
		}
		names = append(names, f.Variadic)
		vals = append(vals, SExpr(rest))
	}
	child := f.Env.Extend(names, vals)
	var ret *LVal
	for _, expr := range f.Body {
		ret = child.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}
