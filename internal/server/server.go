// Package server is the local preview: it builds the site with drafts
// included, serves the output directory, and rebuilds when content,
// layouts or static files change.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/inkwell-press/inkwell/internal/build"
)

type Server struct {
	builder   *build.Builder
	outputDir string
	port      string
	watchDirs []string
	debounce  time.Duration
}

func New(builder *build.Builder, outputDir, port string, watchDirs []string, debounce time.Duration) *Server {
	return &Server{
		builder:   builder,
		outputDir: outputDir,
		port:      port,
		watchDirs: watchDirs,
		debounce:  debounce,
	}
}

// Run builds once, starts the watcher and serves until ctx is done.
// A failed initial build is fatal; failed rebuilds only log, so a
// half-written post never kills the preview.
func (s *Server) Run(ctx context.Context) error {
	_, err := s.builder.Build()
	if err != nil {
		return err
	}

	stopWatch, err := s.watch(ctx)
	if err != nil {
		return err
	}
	defer stopWatch()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	mux.Handle("/", http.FileServer(http.Dir(s.outputDir)))

	handler := Chain(
		mux,
		RequestLogging,
		SecurityHeaders,
	)

	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("preview server started", "url", "http://localhost:"+s.port, "output", s.outputDir)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
