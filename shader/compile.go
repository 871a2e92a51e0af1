// Package shader compiles pseudo-shader source text into per-pixel
// color programs.
//
// The language is a deliberately small expression language: function
// declarations, let/const bindings, if/else, return, arithmetic,
// comparisons, and calls into the sumi color algebra. A program can only
// reach the algebra and the named palette, so user code has no host
// capabilities. A shader must declare a zero-parameter function main
// returning a color value; the predeclared name texCoord holds the
// current pixel's normalized coordinate during evaluation.
package shader

import (
	"fmt"
	"strings"

	"github.com/tsukinoko-kun/sumi"
)

// CompileError reports source text that could not be turned into a
// runnable program. Nothing partial is produced alongside it.
type CompileError struct {
	Err error
}

func (e *CompileError) Error() string {
	return "shader: " + e.Err.Error()
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compiler compiles shader sources. It is stateless and implements
// sumi.Compiler; the zero value is ready to use.
type Compiler struct{}

// NewCompiler returns a ready-to-use compiler.
func NewCompiler() *Compiler { return &Compiler{} }

// Compile implements sumi.Compiler.
func (c *Compiler) Compile(source string) (sumi.ShaderProgram, error) {
	prog, err := CompileProgram(source)
	if err != nil {
		return nil, err
	}
	return prog.Eval, nil
}

// Program is a compiled shader: the user's functions plus the evaluated
// top-level bindings. It is immutable after compilation and evaluated
// once per pixel without recompilation.
type Program struct {
	main    *userFunc
	globals *env
}

// CompileProgram compiles source into a Program. Import-style
// declarations are stripped first and never evaluated. Any lexing,
// parsing, or top-level evaluation failure returns a *CompileError.
func CompileProgram(source string) (*Program, error) {
	src := stripImports(source)

	toks, err := lex(src)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	f, err := parse(toks)
	if err != nil {
		return nil, &CompileError{Err: err}
	}

	globals := newGlobalEnv()
	ev := &evaluator{}
	for _, d := range f.Decls {
		switch decl := d.(type) {
		case *funcDecl:
			globals.define(decl.Name, &userFunc{decl: decl, closure: globals})
		default:
			// Top-level bindings and expressions run once at
			// construction time; a failure here is a compile failure.
			if _, _, err := ev.execStmts([]stmt{d}, globals); err != nil {
				return nil, &CompileError{Err: err}
			}
		}
	}

	m, ok := globals.lookup("main")
	if !ok {
		return nil, &CompileError{Err: fmt.Errorf("main is not defined")}
	}
	mainFn, ok := m.(*userFunc)
	if !ok {
		return nil, &CompileError{Err: fmt.Errorf("main must be a function, got %s", typeName(m))}
	}
	if len(mainFn.decl.Params) != 0 {
		return nil, &CompileError{Err: fmt.Errorf("main must take no parameters")}
	}
	return &Program{main: mainFn, globals: globals}, nil
}

// Eval runs main for one pixel. texCoord is visible to the whole call
// tree as a read-only binding. The returned value must be a color value;
// runtime faults propagate to the caller for per-pixel isolation.
func (p *Program) Eval(texCoord sumi.Value) (sumi.Value, error) {
	scope := newEnv(p.globals)
	scope.define("texCoord", texCoord)

	// main's closure is rebound so texCoord resolves for every function
	// in the call tree, not just main's body.
	fn := &userFunc{decl: p.main.decl, closure: scope}
	ev := &evaluator{}
	call := &callExpr{
		position: position{Line: p.main.decl.Line, Col: p.main.decl.Col},
		Callee:   &identExpr{Name: "main"},
	}
	out, err := ev.callUser(call, fn, nil)
	if err != nil {
		return sumi.Value{}, err
	}
	v, ok := out.(sumi.Value)
	if !ok {
		return sumi.Value{}, fmt.Errorf("main must return a color value, got %s", typeName(out))
	}
	if !v.IsColor() {
		return sumi.Value{}, fmt.Errorf("main must return a color value, got a plain number")
	}
	return v, nil
}

// stripImports removes import-style declarations from the source before
// compilation. Stripped lines are replaced with blank lines so positions
// in diagnostics still match the user's text. A declaration ends at the
// first line containing ';' or a from-clause with a quoted module name.
func stripImports(source string) string {
	lines := strings.Split(source, "\n")
	inImport := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inImport {
			if trimmed == "import" || strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "import{") {
				inImport = true
			} else {
				continue
			}
		}
		lines[i] = ""
		if importEnds(trimmed) {
			inImport = false
		}
	}
	return strings.Join(lines, "\n")
}

func importEnds(line string) bool {
	if strings.Contains(line, ";") {
		return true
	}
	if i := strings.Index(line, "from"); i >= 0 {
		rest := line[i+len("from"):]
		return strings.Contains(rest, "\"") || strings.Contains(rest, "'")
	}
	return false
}

// newGlobalEnv builds the vocabulary every shader sees: the value
// constructors, the blend operations, and the named palette.
func newGlobalEnv() *env {
	en := newEnv(nil)

	scalarArg := func(args []any, i int, fname string) (float64, error) {
		v, ok := args[i].(sumi.Value)
		if !ok || v.Dim() > 1 {
			return 0, fmt.Errorf("argument %d of %s must be a number, got %s", i+1, fname, typeName(args[i]))
		}
		return v.Float(), nil
	}
	valueArg := func(args []any, i int, fname string) (sumi.Value, error) {
		v, ok := args[i].(sumi.Value)
		if !ok {
			return sumi.Value{}, fmt.Errorf("argument %d of %s must be a number or color value, got %s",
				i+1, fname, typeName(args[i]))
		}
		return v, nil
	}
	arity := func(args []any, n int, fname string) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", fname, n, len(args))
		}
		return nil
	}
	values := func(args []any, fname string) ([]sumi.Value, error) {
		out := make([]sumi.Value, len(args))
		for i := range args {
			v, err := valueArg(args, i, fname)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	en.define("Scalar", &constructor{builtinFunc: builtinFunc{
		name: "Scalar",
		fn: func(args []any) (any, error) {
			if err := arity(args, 1, "Scalar"); err != nil {
				return nil, err
			}
			f, err := scalarArg(args, 0, "Scalar")
			if err != nil {
				return nil, err
			}
			return sumi.Scalar(f), nil
		},
	}})

	en.define("Vector2", &constructor{builtinFunc: builtinFunc{
		name: "Vector2",
		fn: func(args []any) (any, error) {
			if err := arity(args, 2, "Vector2"); err != nil {
				return nil, err
			}
			x, err := scalarArg(args, 0, "Vector2")
			if err != nil {
				return nil, err
			}
			y, err := scalarArg(args, 1, "Vector2")
			if err != nil {
				return nil, err
			}
			return sumi.Vec2(x, y), nil
		},
	}})

	en.define("Vector3", &constructor{
		builtinFunc: builtinFunc{
			name: "Vector3",
			fn: func(args []any) (any, error) {
				if err := arity(args, 3, "Vector3"); err != nil {
					return nil, err
				}
				var c [3]float64
				for i := 0; i < 3; i++ {
					f, err := scalarArg(args, i, "Vector3")
					if err != nil {
						return nil, err
					}
					c[i] = f
				}
				return sumi.Vec3(c[0], c[1], c[2]), nil
			},
		},
		statics: map[string]*builtinFunc{
			"fromHex": {
				name: "Vector3.fromHex",
				fn: func(args []any) (any, error) {
					if err := arity(args, 1, "Vector3.fromHex"); err != nil {
						return nil, err
					}
					s, ok := args[0].(string)
					if !ok {
						return nil, fmt.Errorf("argument 1 of Vector3.fromHex must be a string, got %s", typeName(args[0]))
					}
					return sumi.ParseHex(s)
				},
			},
		},
	})

	en.define("lerp", &builtinFunc{name: "lerp", fn: func(args []any) (any, error) {
		if err := arity(args, 3, "lerp"); err != nil {
			return nil, err
		}
		vs, err := values(args, "lerp")
		if err != nil {
			return nil, err
		}
		return sumi.Lerp(vs[0], vs[1], vs[2])
	}})

	en.define("inverseLerp", &builtinFunc{name: "inverseLerp", fn: func(args []any) (any, error) {
		if err := arity(args, 3, "inverseLerp"); err != nil {
			return nil, err
		}
		vs, err := values(args, "inverseLerp")
		if err != nil {
			return nil, err
		}
		return sumi.InverseLerp(vs[0], vs[1], vs[2])
	}})

	en.define("clamp", &builtinFunc{name: "clamp", fn: func(args []any) (any, error) {
		if err := arity(args, 3, "clamp"); err != nil {
			return nil, err
		}
		vs, err := values(args, "clamp")
		if err != nil {
			return nil, err
		}
		return sumi.Clamp(vs[0], vs[1], vs[2])
	}})

	en.define("remap", &builtinFunc{name: "remap", fn: func(args []any) (any, error) {
		if err := arity(args, 5, "remap"); err != nil {
			return nil, err
		}
		vs, err := values(args, "remap")
		if err != nil {
			return nil, err
		}
		return sumi.Remap(vs[0], vs[1], vs[2], vs[3], vs[4])
	}})

	en.define("radialGradientExponential", &builtinFunc{name: "radialGradientExponential", fn: func(args []any) (any, error) {
		if err := arity(args, 4, "radialGradientExponential"); err != nil {
			return nil, err
		}
		vs, err := values(args, "radialGradientExponential")
		if err != nil {
			return nil, err
		}
		return sumi.RadialGradientExponential(vs[0], vs[1], vs[2], vs[3]), nil
	}})

	en.define("nearlyEqual", &builtinFunc{name: "nearlyEqual", fn: func(args []any) (any, error) {
		if len(args) != 2 && len(args) != 3 {
			return nil, fmt.Errorf("nearlyEqual takes 2 or 3 argument(s), got %d", len(args))
		}
		a, err := valueArg(args, 0, "nearlyEqual")
		if err != nil {
			return nil, err
		}
		b, err := valueArg(args, 1, "nearlyEqual")
		if err != nil {
			return nil, err
		}
		if len(args) == 3 {
			eps, err := scalarArg(args, 2, "nearlyEqual")
			if err != nil {
				return nil, err
			}
			return sumi.NearlyEqualEps(a, b, eps)
		}
		return sumi.NearlyEqual(a, b)
	}})

	for name, v := range sumi.Palette() {
		en.define(name, v)
	}
	return en
}
