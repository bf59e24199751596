// Package server is the HTTP front of the portfolio: full pages, HTMX
// fragments, and the background dot field as SVG snapshots or a live
// event stream.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aravind-Sathesh/portfolio/internal/content"
	"github.com/Aravind-Sathesh/portfolio/internal/logging"
	"github.com/Aravind-Sathesh/portfolio/internal/site"
)

// Options configures a Server.
type Options struct {
	Source  content.Source
	Profile site.Profile
	Icons   site.IconSet
	Logger  *zap.Logger

	TemplatesDir string
	StaticDir    string
	ImagesDir    string

	// DotsFPS is the frame rate of /background/stream.
	DotsFPS int
	// RegenerateOnResize makes the page reopen the background stream at the
	// new window size, which builds a fresh grid. Otherwise the page keeps
	// the stream it opened at load and only the canvas is resized.
	RegenerateOnResize bool

	// Now defaults to time.Now.
	Now func() time.Time
}

// Server serves the site.
type Server struct {
	opts    Options
	engine  *gin.Engine
	logger  *zap.Logger
	streams atomic.Int64

	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// New builds the router and parses the templates.
func New(opts Options) (*Server, error) {
	if opts.Source == nil {
		return nil, errors.New("server: nil content source")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DotsFPS <= 0 {
		opts.DotsFPS = 60
	}
	if opts.Icons == nil {
		opts.Icons = site.IconSet{}
	}

	s := &Server{opts: opts, logger: opts.Logger, shutdown: make(chan struct{})}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Requests(opts.Logger))
	if err := loadTemplates(r, opts.TemplatesDir); err != nil {
		return nil, err
	}

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	if opts.ImagesDir != "" {
		r.Static("/images", opts.ImagesDir)
	}

	r.GET("/", s.home)
	r.GET("/projects/:slug", s.project)
	r.GET("/projects/:slug/gallery/:index", s.gallery)
	r.POST("/theme", s.toggleTheme)
	r.GET("/background.svg", s.backgroundSVG)
	r.GET("/background/stream", s.backgroundStream)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(s.notFound)

	s.engine = r
	return s, nil
}

func loadTemplates(r *gin.Engine, dir string) error {
	if dir == "" {
		dir = "templates"
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return fmt.Errorf("bad templates dir: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no templates found in %s", dir)
	}
	r.LoadHTMLFiles(matches...)
	return nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ActiveStreams returns the number of open background streams.
func (s *Server) ActiveStreams() int64 {
	return s.streams.Load()
}

// closeStreams ends every open background stream. Streams never go idle,
// so Shutdown would otherwise wait for its timeout.
func (s *Server) closeStreams() {
	s.shutdownOnce.Do(func() { close(s.shutdown) })
}

// Run serves on addr until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeStreams)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
