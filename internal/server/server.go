// Package server serves a generated archive directory locally. The photo
// index fetch inside the archive's pages requires an http origin, so the
// archive is always viewed through this server rather than from the
// filesystem directly.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config holds server configuration.
type Config struct {
	Dir         string // generated archive directory
	Port        int
	OpenBrowser bool
	LiveReload  bool
}

// Server is the local archive server.
type Server struct {
	cfg        Config
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server
	reload     *reloadHub
}

// New creates a server for the archive in cfg.Dir.
func New(cfg Config, logger *log.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger}
	if cfg.LiveReload {
		s.reload = newReloadHub(logger)
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.quietLogger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	if s.reload != nil {
		r.Get("/livereload", s.reload.handleSocket)
		r.Get("/livereload.js", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/javascript")
			w.Write([]byte(reloadScript))
		})
	}

	// Static archive files, registered last.
	fileServer := http.FileServer(http.Dir(s.cfg.Dir))
	if s.reload != nil {
		fileServer = injectReloadScript(fileServer)
	}
	r.Handle("/*", fileServer)

	return r
}

// quietLogger logs only failed requests, the way the archive's bundled
// launcher does; a photo archive produces too many asset hits to log them
// all.
func (s *Server) quietLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if ww.Status() >= 400 {
			s.logger.Error("request failed",
				"method", r.Method, "path", r.URL.Path, "status", ww.Status())
		}
	})
}

// Router returns the chi router, for tests and embedding.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port. It blocks until the server
// stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.cfg.Port)
	url := fmt.Sprintf("http://%s/index.html", addr)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if s.reload != nil {
		if err := s.reload.watch(s.cfg.Dir); err != nil {
			s.logger.Warn("live reload disabled", "err", err)
		}
	}

	if s.cfg.OpenBrowser {
		go openBrowser(url)
	}

	s.logger.Info("serving archive", "dir", s.cfg.Dir, "url", url)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.reload != nil {
		s.reload.close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
