package sumi

import (
	"errors"
	"strings"
	"testing"
)

// stubCompiler lets rasterizer tests inject programs or compile failures
// without a real shader frontend.
type stubCompiler struct {
	prog ShaderProgram
	err  error
}

func (s stubCompiler) Compile(string) (ShaderProgram, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prog, nil
}

func collectLines(dst *[]Line) LogSink {
	return func(lines []Line) { *dst = append([]Line(nil), lines...) }
}

func TestRenderPassConstantColor(t *testing.T) {
	prog := func(Value) (Value, error) { return Scalar(0.5), nil }
	var lines []Line
	r := NewRasterizer(stubCompiler{prog: prog}, collectLines(&lines))

	if err := r.RenderPass("ignored"); err != nil {
		t.Fatalf("RenderPass: %v", err)
	}

	wr, wg, wb, wa := Scalar(0.5).RGBA8()
	pm := r.Canvas()
	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			gr, gg, gb, ga := pm.Get(x, y)
			if gr != wr || gg != wg || gb != wb || ga != wa {
				t.Fatalf("pixel (%d, %d) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					x, y, gr, gg, gb, ga, wr, wg, wb, wa)
			}
		}
	}

	if len(lines) != 1 || lines[0].String() != "Rendered 512x512 image" {
		t.Errorf("log = %v, want single summary line", lines)
	}
}

func TestRenderPassTexCoordMapping(t *testing.T) {
	var seen []Value
	prog := func(uv Value) (Value, error) {
		if len(seen) < 2 {
			seen = append(seen, uv)
		}
		return Black, nil
	}
	r := NewRasterizer(stubCompiler{prog: prog}, nil)
	if err := r.RenderPass(""); err != nil {
		t.Fatal(err)
	}

	if len(seen) < 2 {
		t.Fatal("program was not invoked")
	}
	if !valuesNear(seen[0], Vec2(0, 0)) {
		t.Errorf("first texCoord = %v, want Vector2(0, 0)", seen[0])
	}
	if !valuesNear(seen[1], Vec2(1.0/CanvasSize, 0)) {
		t.Errorf("second texCoord = %v, want Vector2(1/512, 0)", seen[1])
	}
}

func TestRenderPassPerPixelFaultIsolation(t *testing.T) {
	boom := errors.New("boom")
	prog := func(Value) (Value, error) { return Value{}, boom }
	var lines []Line
	r := NewRasterizer(stubCompiler{prog: prog}, collectLines(&lines))

	if err := r.RenderPass(""); err != nil {
		t.Fatalf("RenderPass should succeed despite pixel failures, got %v", err)
	}

	// Every pixel painted opaque fallback black.
	pm := r.Canvas()
	for _, c := range []struct{ x, y int }{{0, 0}, {511, 511}, {256, 100}} {
		gr, gg, gb, ga := pm.Get(c.x, c.y)
		if gr != 0 || gg != 0 || gb != 0 || ga != 255 {
			t.Errorf("pixel (%d, %d) = (%d, %d, %d, %d), want opaque black", c.x, c.y, gr, gg, gb, ga)
		}
	}

	// Summary still reported, plus one warning about the failures.
	if len(lines) != 2 {
		t.Fatalf("log = %v, want warning + summary", lines)
	}
	if lines[0].Level != LevelWarning || !strings.Contains(lines[0].Message, "262144 pixels") {
		t.Errorf("warning line = %q", lines[0])
	}
	if lines[1].String() != "Rendered 512x512 image" {
		t.Errorf("summary line = %q", lines[1])
	}
}

func TestRenderPassSinglePixelFault(t *testing.T) {
	prog := func(uv Value) (Value, error) {
		if valuesNear(uv, Vec2(0, 0)) {
			return Value{}, errors.New("corner pixel")
		}
		return White, nil
	}
	r := NewRasterizer(stubCompiler{prog: prog}, nil)
	if err := r.RenderPass(""); err != nil {
		t.Fatal(err)
	}
	if gr, _, _, ga := r.Canvas().Get(0, 0); gr != 0 || ga != 255 {
		t.Error("failed pixel not painted fallback black")
	}
	if gr, gg, gb, _ := r.Canvas().Get(1, 0); gr != 255 || gg != 255 || gb != 255 {
		t.Error("neighboring pixel affected by the fault")
	}
}

func TestRenderPassPanicContained(t *testing.T) {
	prog := func(uv Value) (Value, error) {
		if uv.Red() == 0 && uv.Green() == 0 {
			panic("first pixel")
		}
		return Gray, nil
	}
	r := NewRasterizer(stubCompiler{prog: prog}, nil)
	if err := r.RenderPass(""); err != nil {
		t.Fatalf("panic escaped the pixel boundary: %v", err)
	}
	if gr, _, _, ga := r.Canvas().Get(0, 0); gr != 0 || ga != 255 {
		t.Error("panicking pixel not painted fallback black")
	}
}

func TestRenderPassCompileFailure(t *testing.T) {
	compileErr := errors.New("unexpected token")
	var lines []Line
	r := NewRasterizer(stubCompiler{err: compileErr}, collectLines(&lines))

	// Pre-fill the canvas to prove it stays untouched.
	r.Canvas().Set(5, 5, 9, 9, 9, 9)

	err := r.RenderPass("")
	if !errors.Is(err, compileErr) {
		t.Fatalf("RenderPass error = %v, want the compile error", err)
	}

	if len(lines) != 1 || lines[0].Level != LevelError {
		t.Fatalf("log = %v, want exactly one ERROR line", lines)
	}
	if !strings.Contains(lines[0].Message, "unexpected token") {
		t.Errorf("error line %q does not carry the underlying message", lines[0].Message)
	}
	if gr, _, _, _ := r.Canvas().Get(5, 5); gr != 9 {
		t.Error("canvas modified on compile failure")
	}
	if r.State() != StateIdle {
		t.Errorf("state = %v, want idle", r.State())
	}
}

func TestRasterizerStateDuringPass(t *testing.T) {
	r := NewRasterizer(nil, nil)
	r.compiler = stubCompiler{prog: func(Value) (Value, error) {
		if r.State() != StateRendering {
			t.Fatal("state during pixel loop is not rendering")
		}
		return Black, nil
	}}
	if r.State() != StateIdle {
		t.Fatal("fresh rasterizer not idle")
	}
	if err := r.RenderPass(""); err != nil {
		t.Fatal(err)
	}
	if r.State() != StateIdle {
		t.Error("rasterizer not idle after pass")
	}
}

func TestRenderPassFlushesOnEveryPath(t *testing.T) {
	var flushes int
	sink := func([]Line) { flushes++ }

	r := NewRasterizer(stubCompiler{err: errors.New("nope")}, sink)
	_ = r.RenderPass("")
	ok := NewRasterizer(stubCompiler{prog: func(Value) (Value, error) { return Black, nil }}, sink)
	_ = ok.RenderPass("")

	if flushes != 2 {
		t.Errorf("sink called %d times, want 2 (failure and success paths)", flushes)
	}
}
