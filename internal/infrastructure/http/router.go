package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/cardboard/internal/infrastructure/http/handlers"
	"github.com/kanbanhq/cardboard/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler   *handlers.AuthHandler
	CardHandler   *handlers.CardHandler
	HealthHandler *handlers.HealthHandler
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.AllowContentType("application/json"))

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Post("/forgotPassword", cfg.AuthHandler.ForgotPassword)
			r.Post("/resetPassword", cfg.AuthHandler.ResetPassword)
		})
		r.Route("/cards", func(r chi.Router) {
			r.Post("/", cfg.CardHandler.Create)
			r.Get("/", cfg.CardHandler.List)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
