package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/handlers"
	"blitzboat/backend-go/internal/services"
)

func NewRouter(cfg config.Config, cache services.Cache) http.Handler {
	api := handlers.New(cfg, cache)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", api.Health)
	mux.HandleFunc("/api/v1/session", api.Session)
	mux.HandleFunc("/api/v1/session/unlock", api.Unlock)
	mux.HandleFunc("/api/v1/dashboard", api.Dashboard)
	mux.HandleFunc("/api/v1/race", api.Race)
	mux.HandleFunc("/api/v1/ranking", api.Ranking)
	mux.Handle("/metrics", promhttp.Handler())

	h := http.Handler(mux)
	h = withRecovery(h)
	h = withLogging(h)
	h = withRateLimit(cfg.RateLimitPerMin)(h)
	h = withCORS(h)
	return h
}
