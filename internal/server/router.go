// Package server is the demo marketing API: one hard-coded account, content
// generation through a pluggable generator, and no persistence.
package server

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/config"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/generator"
)

// base64 of a 10 MB image plus JSON overhead
const maxBodyBytes = 16 << 20

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(cfg *config.ServerConfig, gen generator.Generator, logger *zap.Logger) (*chi.Mux, error) {
	authH, err := NewAuthHandler(cfg, logger.Named("auth"))
	if err != nil {
		return nil, err
	}
	pageH, err := NewPageHandler(gen)
	if err != nil {
		return nil, err
	}
	taskH := NewTaskHandler(gen, cfg.AdminUID, logger.Named("tasks"))

	r := chi.NewRouter()
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	r.Get("/", pageH.Index)
	r.Get("/health", pageH.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authH.Login)
		r.Post("/register", authH.Register)
		r.Post("/update_password", authH.UpdatePassword)
		r.Post("/generate_task", taskH.Generate)
		r.Get("/tasks/{uid}", taskH.List)
	})

	return r, nil
}
