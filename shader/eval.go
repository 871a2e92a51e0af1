package shader

import (
	"fmt"

	"github.com/tsukinoko-kun/sumi"
)

// The evaluator walks the syntax tree directly. Runtime objects are
// sumi.Value for numbers and colors, bool for conditions, string for hex
// literals, plus the callable kinds below. Algebra errors (dimension
// mismatch, format, range) are not recovered here; they propagate to the
// per-pixel boundary in the rasterizer.

// maxCallDepth bounds user recursion so a runaway shader fails with an
// error instead of exhausting the goroutine stack.
const maxCallDepth = 200

// env is one lexical scope. Bindings are created by let/const and
// parameter binding; the language has no assignment, so bindings are
// immutable once created (shadowing in an inner scope is allowed).
type env struct {
	parent *env
	vars   map[string]any
}

func newEnv(parent *env) *env {
	return &env{parent: parent, vars: make(map[string]any)}
}

func (e *env) lookup(name string) (any, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *env) define(name string, v any) {
	e.vars[name] = v
}

// userFunc is a shader-defined function together with its closure.
type userFunc struct {
	decl    *funcDecl
	closure *env
}

// builtinFunc is a host function exposed to the shader.
type builtinFunc struct {
	name string
	fn   func(args []any) (any, error)
}

// constructor is a callable like Vector3 that may also carry statics
// (Vector3.fromHex).
type constructor struct {
	builtinFunc
	statics map[string]*builtinFunc
}

// boundMethod is a method selected from a value, e.g. uv.add, waiting to
// be called.
type boundMethod struct {
	recv sumi.Value
	name string
}

type evaluator struct {
	depth int
}

func posErrf(n interface{ pos() (int, int) }, format string, args ...any) error {
	line, col := n.pos()
	return fmt.Errorf("line %d:%d: %s", line, col, fmt.Sprintf(format, args...))
}

// posWrap prefixes a propagating error with the source position that
// triggered it, preserving the error chain.
func posWrap(n interface{ pos() (int, int) }, err error) error {
	line, col := n.pos()
	return fmt.Errorf("line %d:%d: %w", line, col, err)
}

func typeName(v any) string {
	switch t := v.(type) {
	case sumi.Value:
		return t.Kind().String()
	case bool:
		return "boolean"
	case string:
		return "string"
	case *userFunc:
		return "function " + t.decl.Name
	case *builtinFunc:
		return "function " + t.name
	case *constructor:
		return "constructor " + t.name
	case boundMethod:
		return "method " + t.name
	default:
		return fmt.Sprintf("%T", v)
	}
}

// execStmts runs a statement list. returned reports whether a return
// statement fired; ret is its value.
func (ev *evaluator) execStmts(stmts []stmt, en *env) (ret any, returned bool, err error) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *letStmt:
			v, err := ev.evalExpr(st.Value, en)
			if err != nil {
				return nil, false, err
			}
			en.define(st.Name, v)
		case *returnStmt:
			v, err := ev.evalExpr(st.Value, en)
			if err != nil {
				return nil, false, err
			}
			return v, true, nil
		case *exprStmt:
			if _, err := ev.evalExpr(st.X, en); err != nil {
				return nil, false, err
			}
		case *ifStmt:
			cond, err := ev.evalExpr(st.Cond, en)
			if err != nil {
				return nil, false, err
			}
			b, ok := cond.(bool)
			if !ok {
				return nil, false, posErrf(st, "if condition must be a boolean, got %s", typeName(cond))
			}
			branch := st.Then
			if !b {
				branch = st.Else
			}
			if len(branch) > 0 {
				v, done, err := ev.execStmts(branch, newEnv(en))
				if err != nil {
					return nil, false, err
				}
				if done {
					return v, true, nil
				}
			}
		case *funcDecl:
			return nil, false, posErrf(st, "function declarations are only allowed at the top level")
		default:
			return nil, false, posErrf(s, "unsupported statement")
		}
	}
	return nil, false, nil
}

func (ev *evaluator) evalExpr(e expr, en *env) (any, error) {
	switch x := e.(type) {
	case *numberLit:
		return sumi.Number(x.Value), nil
	case *stringLit:
		return x.Value, nil
	case *boolLit:
		return x.Value, nil
	case *identExpr:
		v, ok := en.lookup(x.Name)
		if !ok {
			return nil, posErrf(x, "undefined name %q", x.Name)
		}
		return v, nil
	case *unaryExpr:
		return ev.evalUnary(x, en)
	case *binaryExpr:
		return ev.evalBinary(x, en)
	case *memberExpr:
		return ev.evalMember(x, en)
	case *callExpr:
		return ev.evalCall(x, en)
	default:
		return nil, posErrf(e, "unsupported expression")
	}
}

func (ev *evaluator) evalUnary(x *unaryExpr, en *env) (any, error) {
	v, err := ev.evalExpr(x.X, en)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case tokMinus:
		val, ok := v.(sumi.Value)
		if !ok {
			return nil, posErrf(x, "operator '-' needs a numeric operand, got %s", typeName(v))
		}
		return val.Neg(), nil
	case tokNot:
		b, ok := v.(bool)
		if !ok {
			return nil, posErrf(x, "operator '!' needs a boolean operand, got %s", typeName(v))
		}
		return !b, nil
	default:
		return nil, posErrf(x, "unsupported unary operator %s", x.Op)
	}
}

func (ev *evaluator) evalBinary(x *binaryExpr, en *env) (any, error) {
	// Short-circuit logic before evaluating the right operand.
	if x.Op == tokAnd || x.Op == tokOr {
		left, err := ev.evalExpr(x.X, en)
		if err != nil {
			return nil, err
		}
		lb, ok := left.(bool)
		if !ok {
			return nil, posErrf(x, "operator %s needs boolean operands, got %s", x.Op, typeName(left))
		}
		if (x.Op == tokAnd && !lb) || (x.Op == tokOr && lb) {
			return lb, nil
		}
		right, err := ev.evalExpr(x.Y, en)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(bool)
		if !ok {
			return nil, posErrf(x, "operator %s needs boolean operands, got %s", x.Op, typeName(right))
		}
		return rb, nil
	}

	left, err := ev.evalExpr(x.X, en)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(x.Y, en)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case tokPlus, tokMinus, tokStar, tokSlash:
		lv, lok := left.(sumi.Value)
		rv, rok := right.(sumi.Value)
		if !lok || !rok {
			return nil, posErrf(x, "operator %s needs numeric or color operands, got %s and %s",
				x.Op, typeName(left), typeName(right))
		}
		var out sumi.Value
		switch x.Op {
		case tokPlus:
			out, err = lv.Add(rv)
		case tokMinus:
			out, err = lv.Sub(rv)
		case tokStar:
			out, err = lv.Mul(rv)
		default:
			out, err = lv.Div(rv)
		}
		if err != nil {
			return nil, posWrap(x, err)
		}
		return out, nil

	case tokLess, tokLessEq, tokGreater, tokGreatEq:
		lf, rf, err := ev.numericPair(x, left, right)
		if err != nil {
			return nil, err
		}
		switch x.Op {
		case tokLess:
			return lf < rf, nil
		case tokLessEq:
			return lf <= rf, nil
		case tokGreater:
			return lf > rf, nil
		default:
			return lf >= rf, nil
		}

	case tokEq, tokNotEq:
		eq, err := ev.equals(x, left, right)
		if err != nil {
			return nil, err
		}
		if x.Op == tokNotEq {
			return !eq, nil
		}
		return eq, nil

	default:
		return nil, posErrf(x, "unsupported binary operator %s", x.Op)
	}
}

func (ev *evaluator) numericPair(x *binaryExpr, left, right any) (float64, float64, error) {
	lv, lok := left.(sumi.Value)
	rv, rok := right.(sumi.Value)
	if !lok || !rok || lv.Dim() > 1 || rv.Dim() > 1 {
		return 0, 0, posErrf(x, "operator %s needs scalar operands, got %s and %s",
			x.Op, typeName(left), typeName(right))
	}
	return lv.Float(), rv.Float(), nil
}

func (ev *evaluator) equals(x *binaryExpr, left, right any) (bool, error) {
	if lb, ok := left.(bool); ok {
		rb, ok := right.(bool)
		if !ok {
			return false, posErrf(x, "cannot compare boolean with %s", typeName(right))
		}
		return lb == rb, nil
	}
	lf, rf, err := ev.numericPair(x, left, right)
	if err != nil {
		return false, err
	}
	return lf == rf, nil
}

func (ev *evaluator) evalMember(x *memberExpr, en *env) (any, error) {
	recv, err := ev.evalExpr(x.X, en)
	if err != nil {
		return nil, err
	}
	switch r := recv.(type) {
	case *constructor:
		if s, ok := r.statics[x.Name]; ok {
			return s, nil
		}
		return nil, posErrf(x, "%s has no member %q", r.name, x.Name)
	case sumi.Value:
		return boundMethod{recv: r, name: x.Name}, nil
	default:
		return nil, posErrf(x, "%s has no members", typeName(recv))
	}
}

func (ev *evaluator) evalCall(x *callExpr, en *env) (any, error) {
	callee, err := ev.evalExpr(x.Callee, en)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(x.Args))
	for i, a := range x.Args {
		v, err := ev.evalExpr(a, en)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *userFunc:
		return ev.callUser(x, fn, args)
	case *builtinFunc:
		out, err := fn.fn(args)
		if err != nil {
			return nil, posWrap(x, err)
		}
		return out, nil
	case *constructor:
		out, err := fn.fn(args)
		if err != nil {
			return nil, posWrap(x, err)
		}
		return out, nil
	case boundMethod:
		out, err := callMethod(fn.recv, fn.name, args)
		if err != nil {
			return nil, posWrap(x, err)
		}
		return out, nil
	default:
		return nil, posErrf(x, "%s is not callable", typeName(callee))
	}
}

func (ev *evaluator) callUser(x *callExpr, fn *userFunc, args []any) (any, error) {
	if len(args) != len(fn.decl.Params) {
		return nil, posErrf(x, "function %s takes %d argument(s), got %d",
			fn.decl.Name, len(fn.decl.Params), len(args))
	}
	if ev.depth >= maxCallDepth {
		return nil, posErrf(x, "call depth limit (%d) exceeded in function %s", maxCallDepth, fn.decl.Name)
	}
	ev.depth++
	defer func() { ev.depth-- }()

	scope := newEnv(fn.closure)
	for i, p := range fn.decl.Params {
		scope.define(p, args[i])
	}
	ret, returned, err := ev.execStmts(fn.decl.Body, scope)
	if err != nil {
		return nil, err
	}
	if !returned {
		return nil, posErrf(x, "function %s did not return a value", fn.decl.Name)
	}
	return ret, nil
}

// callMethod dispatches the value methods of the algebra.
func callMethod(recv sumi.Value, name string, args []any) (any, error) {
	valueArg := func(i int) (sumi.Value, error) {
		v, ok := args[i].(sumi.Value)
		if !ok {
			return sumi.Value{}, fmt.Errorf("argument %d of %s must be a number or color value, got %s",
				i+1, name, typeName(args[i]))
		}
		return v, nil
	}
	arity := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("method %s takes %d argument(s), got %d", name, n, len(args))
		}
		return nil
	}

	switch name {
	case "add", "subtract", "multiply", "divide", "distance", "dot", "cross":
		if err := arity(1); err != nil {
			return nil, err
		}
		arg, err := valueArg(0)
		if err != nil {
			return nil, err
		}
		switch name {
		case "add":
			return recv.Add(arg)
		case "subtract":
			return recv.Sub(arg)
		case "multiply":
			return recv.Mul(arg)
		case "divide":
			return recv.Div(arg)
		case "distance":
			return recv.Distance(arg), nil
		case "dot":
			return recv.Dot(arg)
		default:
			return recv.Cross(arg)
		}
	case "length":
		if err := arity(0); err != nil {
			return nil, err
		}
		return recv.Length(), nil
	case "lengthSquared":
		if err := arity(0); err != nil {
			return nil, err
		}
		return recv.LengthSquared(), nil
	case "red", "green", "blue", "alpha":
		if err := arity(0); err != nil {
			return nil, err
		}
		switch name {
		case "red":
			return sumi.Number(recv.Red()), nil
		case "green":
			return sumi.Number(recv.Green()), nil
		case "blue":
			return sumi.Number(recv.Blue()), nil
		default:
			return sumi.Number(recv.Alpha()), nil
		}
	case "render":
		if err := arity(0); err != nil {
			return nil, err
		}
		return recv.Render(), nil
	default:
		return nil, fmt.Errorf("unknown method %q on %s", name, recv.Kind())
	}
}
