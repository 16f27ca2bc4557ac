package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/lyricspiral/pkg/integrations/lrclib"
	"github.com/matzehuels/lyricspiral/pkg/pipeline"
)

// DefaultAddr matches the port the web frontend proxies to.
const DefaultAddr = ":3001"

// DefaultMaxBodyBytes limits layout and poster request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Lyrics is the lyrics catalog used by the search, lyrics and poster routes.
type Lyrics interface {
	Search(ctx context.Context, query string, refresh bool) ([]lrclib.Song, error)
	GetLyrics(ctx context.Context, q lrclib.LyricsQuery, refresh bool) (*lrclib.Lyrics, error)
}

// Config holds server settings. Zero values use the defaults.
type Config struct {
	Addr           string
	MaxBodyBytes   int64
	MaxTextLength  int
	AllowedOrigins []string
	RenderTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.RenderTimeout <= 0 {
		c.RenderTimeout = 30 * time.Second
	}
	return c
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	lyrics Lyrics
	logger *log.Logger
}

// New creates a server. runner and lyrics must be non-nil.
func New(cfg Config, runner *pipeline.Runner, lyrics Lyrics, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg.withDefaults(),
		runner: runner,
		lyrics: lyrics,
		logger: logger,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// Handler returns the router with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "X-Cache"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/search", s.handleSearch)
		r.Get("/lyrics", s.handleLyrics)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequestSize(s.cfg.MaxBodyBytes))
			r.Post("/layout", s.handleLayout)
			r.Post("/poster", s.handlePoster)
		})
		r.Get("/poster", s.handlePosterFromLyrics)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", r.URL.Path, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" "+r.URL.Path, "")
	})

	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.RenderTimeout + 10*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
