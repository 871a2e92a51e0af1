package sumi

import (
	"fmt"
	"log/slog"
	"time"
)

// CanvasSize is the fixed edge length of the output canvas in pixels.
const CanvasSize = 512

// ShaderProgram is a compiled per-pixel color function. It takes the
// normalized texture coordinate of the current pixel (a Vector2 with
// components in [0, 1]) and returns the pixel's color value.
type ShaderProgram func(texCoord Value) (Value, error)

// Compiler turns shader source text into a runnable program. On failure
// it returns no program at all, never a partial one.
type Compiler interface {
	Compile(source string) (ShaderProgram, error)
}

// State describes what the rasterizer is currently doing.
type State uint8

const (
	// StateIdle means no compiled program is executing.
	StateIdle State = iota
	// StateRendering means the pixel loop for the current program is
	// running.
	StateRendering
)

func (s State) String() string {
	if s == StateRendering {
		return "rendering"
	}
	return "idle"
}

// PixelResult is the outcome of evaluating one pixel: a color on
// success, an error otherwise. Keeping the failure explicit makes the
// fallback policy a visible branch of the raster loop.
type PixelResult struct {
	Color Value
	Err   error
}

// Rasterizer drives a compiled shader program over every pixel of a
// fixed square canvas. It owns the canvas exclusively during a pass and
// contains per-pixel failures to the affected pixel.
//
// Rasterizer is not safe for concurrent use; a render pass runs
// synchronously to completion.
type Rasterizer struct {
	compiler Compiler
	canvas   *Pixmap
	sink     LogSink
	state    State
}

// NewRasterizer creates a rasterizer with an empty canvas. The sink
// receives the diagnostic log of every pass; nil discards it.
func NewRasterizer(c Compiler, sink LogSink) *Rasterizer {
	return &Rasterizer{
		compiler: c,
		canvas:   NewPixmap(CanvasSize),
		sink:     sink,
	}
}

// Canvas returns the output buffer. Outside a running pass it holds the
// pixels of the most recent successful pass.
func (r *Rasterizer) Canvas() *Pixmap { return r.canvas }

// State returns the current rasterizer state.
func (r *Rasterizer) State() State { return r.state }

// RenderPass compiles source and rasterizes the resulting program.
//
// A compile failure aborts the pass: exactly one ERROR diagnostic is
// logged, no pixel is evaluated, and the canvas keeps its previous
// content. On success every pixel is evaluated once; a pixel whose
// evaluation fails is painted opaque black and the pass continues.
// The diagnostic log is flushed to the sink on every exit path.
func (r *Rasterizer) RenderPass(source string) error {
	log := NewDiagnosticLog(r.sink)
	defer log.Flush()

	prog, err := r.compiler.Compile(source)
	if err != nil {
		log.Errorf("compile failed: %v", err)
		Logger().Error("compile failed", slog.Any("err", err))
		return err
	}

	r.state = StateRendering
	defer func() { r.state = StateIdle }()

	start := time.Now()
	failed := 0
	var firstErr error
	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			res := evalPixel(prog, x, y)
			if res.Err != nil {
				failed++
				if firstErr == nil {
					firstErr = res.Err
				}
				// Fallback: opaque black, frame stays fully drawn.
				r.canvas.Set(x, y, 0, 0, 0, 255)
				continue
			}
			r.canvas.SetValue(x, y, res.Color)
		}
	}

	if failed > 0 {
		log.Warningf("%d of %d pixels failed to evaluate (first error: %v)",
			failed, CanvasSize*CanvasSize, firstErr)
	}
	log.Infof("Rendered %dx%d image", CanvasSize, CanvasSize)
	Logger().Info("render pass complete",
		slog.Int("failedPixels", failed),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// evalPixel runs the program for one pixel. Any failure, including a
// panic escaping the program, is contained to this pixel's result.
func evalPixel(prog ShaderProgram, x, y int) (res PixelResult) {
	defer func() {
		if p := recover(); p != nil {
			res = PixelResult{Err: fmt.Errorf("sumi: pixel (%d, %d): panic: %v", x, y, p)}
		}
	}()
	uv := Vec2(float64(x)/CanvasSize, float64(y)/CanvasSize)
	c, err := prog(uv)
	if err != nil {
		return PixelResult{Err: err}
	}
	return PixelResult{Color: c}
}
