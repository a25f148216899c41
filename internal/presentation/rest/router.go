package rest

import (
	"log/slog"
	"net/http"
)

// RouterConfig assembles the HTTP surface.
type RouterConfig struct {
	Health       *HealthHandler
	Quotes       *QuoteHandler
	Metrics      http.Handler
	RateLimitRPS float64
	Logger       *slog.Logger
}

// NewRouter mounts every route. Rate limiting applies to the API only, so
// probes and scrapes are never throttled.
func NewRouter(cfg RouterConfig) http.Handler {
	api := http.NewServeMux()
	cfg.Quotes.RegisterRoutes(api)

	var apiHandler http.Handler = api
	if cfg.RateLimitRPS > 0 {
		burst := int(cfg.RateLimitRPS)
		if burst < 1 {
			burst = 1
		}
		apiHandler = RateLimitMiddleware(cfg.RateLimitRPS, burst)(api)
	}

	mux := http.NewServeMux()
	cfg.Health.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	mux.Handle("/api/", apiHandler)

	return Chain(mux, LoggingMiddleware(cfg.Logger))
}
