package api

import (
	"chartd/api/handlers"
	"github.com/go-chi/chi/v5"
)

func (s *Server) registerRoutes() {
	s.router.Use(s.recoverMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.securityHeadersMiddleware)

	renderHandler := handlers.NewRenderHandler(s.renderer, s.recorder, s.stats, s.cfg.Render.JobTimeout, s.cfg.Render.MaxBodyBytes, s.logger)
	jobsHandler := handlers.NewJobsHandler(s.journal)

	s.registerObservabilityRoutes()
	s.router.Post("/", renderHandler.Render)

	apiRouter := chi.NewRouter()
	apiRouter.Post("/render", renderHandler.Render)
	apiRouter.Get("/jobs", jobsHandler.List)
	apiRouter.Get("/jobs/{id}", jobsHandler.Get)
	s.router.Mount("/api", apiRouter)
}
