package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/binary-brain/internal/explain"
	"github.com/saulo-duarte/binary-brain/internal/metrics"
	"github.com/saulo-duarte/binary-brain/internal/middlewares"
	"github.com/saulo-duarte/binary-brain/internal/session"
	"github.com/saulo-duarte/binary-brain/internal/settings"
)

type RouterConfig struct {
	SessionHandler  *session.Handler
	SettingsHandler *settings.Handler
	ExplainHandler  *explain.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/health", middlewares.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/session", session.Routes(cfg.SessionHandler))
	r.Mount("/settings", settings.Routes(cfg.SettingsHandler))
	r.Mount("/explanations", explain.Routes(cfg.ExplainHandler))
	return r
}
