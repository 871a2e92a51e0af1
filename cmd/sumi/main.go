// Command sumi renders a pseudo-shader source file to a PNG image.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	"github.com/tsukinoko-kun/sumi"
	"github.com/tsukinoko-kun/sumi/cmd/internal/config"
	"github.com/tsukinoko-kun/sumi/shader"
)

func main() {
	cfg, err := config.Resolve(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var (
		src     = flag.String("src", cfg.Source, "shader source file")
		output  = flag.String("o", cfg.Output, "output PNG file")
		scale   = flag.Int("scale", cfg.Scale, "integer upscale factor for the output image")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *src == "" {
		fmt.Fprintln(os.Stderr, "usage: sumi -src shader.sumi [-o out.png] [-scale n]")
		os.Exit(2)
	}
	if *scale < 1 {
		log.Fatalf("Invalid scale %d: must be at least 1", *scale)
	}
	if *verbose {
		sumi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	source, err := os.ReadFile(*src)
	if err != nil {
		log.Fatalf("Failed to read shader: %v", err)
	}

	// Diagnostics go to stderr so the PNG path stays the only stdout
	// concern.
	sink := func(lines []sumi.Line) {
		for _, l := range lines {
			fmt.Fprintln(os.Stderr, l)
		}
	}

	r := sumi.NewRasterizer(shader.NewCompiler(), sink)
	if err := r.RenderPass(string(source)); err != nil {
		os.Exit(1)
	}

	img := upscale(r.Canvas().Image(), *scale)
	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		log.Fatalf("Failed to encode PNG: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	side := sumi.CanvasSize * *scale
	log.Printf("Rendered %s to %s (%dx%d)\n", *src, *output, side, side)
}

// upscale enlarges img by an integer factor with nearest-neighbor
// sampling, keeping the hard pixel edges of the shader output.
func upscale(img *image.NRGBA, factor int) image.Image {
	if factor == 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
