package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/tsukinoko-kun/sumi"
	"github.com/tsukinoko-kun/sumi/shader"
)

// maxSourceBytes bounds the shader source accepted per request.
const maxSourceBytes = 1 << 20

// Server renders shader sources posted over HTTP. Render passes are
// serialized: the rasterizer owns a single canvas.
type Server struct {
	mu      sync.Mutex
	rast    *sumi.Rasterizer
	lastLog []sumi.Line
}

// NewServer creates a server with a fresh rasterizer.
func NewServer() *Server {
	s := &Server{}
	s.rast = sumi.NewRasterizer(shader.NewCompiler(), func(lines []sumi.Line) {
		s.lastLog = append([]sumi.Line(nil), lines...)
	})
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/log", s.handleLog)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRender compiles and renders the shader source in the request
// body and responds with the finished PNG. A compile failure leaves the
// previous canvas intact and returns the diagnostic text instead.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	source, err := io.ReadAll(io.LimitReader(r.Body, maxSourceBytes))
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read source: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rast.RenderPass(string(source)); err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		for _, l := range s.lastLog {
			fmt.Fprintln(w, l)
		}
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Canvas-Size", fmt.Sprint(sumi.CanvasSize))
	if err := s.rast.Canvas().EncodePNG(w); err != nil {
		sumi.Logger().Error("png encode failed", "error", err)
	}
}

// logLine is the wire form of one diagnostic line.
type logLine struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// handleLog returns the diagnostic log of the most recent render pass.
func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	lines := s.lastLog
	s.mu.Unlock()

	out := make([]logLine, len(lines))
	for i, l := range lines {
		out[i] = logLine{Level: l.Level.String(), Message: l.Message}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}
