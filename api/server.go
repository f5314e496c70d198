package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"chartd/config"
	"chartd/core/journal"
	"chartd/core/render"
	"chartd/core/utils"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	cfg        *config.AppConfig
	router     *chi.Mux
	httpServer *http.Server
	logger     *utils.Logger
	db         *sql.DB
	renderer   *render.Renderer
	stats      *render.Stats
	journal    journal.Store
	recorder   *journal.Recorder
	pruner     *journal.Pruner
}

func NewServer(cfg *config.AppConfig, logger *utils.Logger, deps ServerDeps) *Server {
	if cfg == nil {
		cfg = &config.AppConfig{}
	}
	theme := render.DefaultTheme().WithBackground(cfg.Render.Background)
	limits := render.Limits{MaxItems: cfg.Render.MaxItems, MaxPixels: cfg.Render.MaxPixels}
	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		logger:   logger,
		db:       deps.DB,
		renderer: render.NewRenderer(theme, limits, logger),
		stats:    render.NewStats(),
		journal:  deps.Journal,
		pruner:   deps.Pruner,
	}
	if deps.Journal != nil {
		s.recorder = journal.NewRecorder(deps.Journal, logger)
	}
	s.registerRoutes()
	return s
}

// Handler exposes the router, mostly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if err := render.PreloadFonts(); err != nil {
		return err
	}
	if s.pruner != nil {
		if err := s.pruner.Start(); err != nil {
			return err
		}
	}
	timeout := s.cfg.Render.JobTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	s.httpServer = &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      timeout + 10*time.Second,
	}
	s.logger.Printf("listening on %s", s.cfg.ListenAddr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.pruner != nil {
		if err := s.pruner.Stop(ctx); err != nil {
			s.logger.Errorf("journal pruner stop: %v", err)
		}
	}
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
