// Package sumi rasterizes small user-written pseudo-shaders onto a
// fixed-size square canvas.
//
// # Overview
//
// A shader is plain text defining a zero-argument function main that
// returns a color value. On every accepted source change the shader is
// compiled into a per-pixel program and evaluated once for each pixel of
// a 512x512 canvas. Compilation happens in the sumi/shader subpackage;
// this package holds the color algebra the shader language computes with,
// the blend operations, the pixel buffer, and the rasterizer that drives
// a compiled program across the canvas.
//
// # Quick Start
//
//	import (
//	    "github.com/tsukinoko-kun/sumi"
//	    "github.com/tsukinoko-kun/sumi/shader"
//	)
//
//	r := sumi.NewRasterizer(shader.NewCompiler(), func(lines []sumi.Line) {
//	    for _, ln := range lines {
//	        fmt.Println(ln)
//	    }
//	})
//	if err := r.RenderPass(src); err == nil {
//	    r.Canvas().SavePNG("out.png")
//	}
//
// # Values and Channels
//
// The algebra works on immutable tagged values: plain numbers, scalars,
// and 2- or 3-component vectors. Every color value exposes four logical
// channels (red, green, blue, alpha); channels past the stored dimension
// read as 0, except alpha which always reads as 1. Binary arithmetic
// accepts equal dimensions or a scalar broadcast against a vector;
// anything else is a dimension mismatch.
//
// # Failure Model
//
// Failures split into two stages. A source that does not compile aborts
// the whole pass: one ERROR diagnostic, no pixel work, the canvas keeps
// its previous content. A failure during one pixel's evaluation is
// contained to that pixel: it is painted opaque black and the rest of the
// frame renders normally. The per-pass diagnostic log is flushed to its
// sink on every exit path.
//
// # Logging
//
// sumi produces no log output by default. Call [SetLogger] to receive
// structured events (compile failures, pass timings, failed pixel counts)
// through log/slog. The per-pass [DiagnosticLog] is separate: it is the
// ordered, user-facing line log of a single render pass.
package sumi
