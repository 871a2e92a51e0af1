// Command sumiserve exposes the shader rasterizer over HTTP.
//
// POST /render with shader source as the body returns the rendered PNG;
// GET /log returns the diagnostic log of the most recent pass as JSON.
package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/tsukinoko-kun/sumi"
	"github.com/tsukinoko-kun/sumi/cmd/internal/config"
)

func main() {
	cfg, err := config.Resolve(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var (
		addr    = flag.String("addr", cfg.Addr, "listen address")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		sumi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s := NewServer()
	log.Printf("Listening on %s", *addr)
	if err := http.ListenAndServe(*addr, s.Handler()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
