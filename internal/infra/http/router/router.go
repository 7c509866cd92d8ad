package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lhomangroup/voyageur-malin/internal/infra/http/handlers"
	"github.com/lhomangroup/voyageur-malin/internal/infra/http/middleware"
)

// ChecklistPaths are the routes serving the submission handler. The second
// one matches the path used by the hosted-functions client.
var ChecklistPaths = []string{"/send-checklist", "/functions/v1/send-checklist"}

type Deps struct {
	Checklist   *handlers.ChecklistHandler
	Health      *handlers.HealthHandler
	RateLimiter *middleware.RateLimiter
	AccessLog   bool
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if d.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	}))

	for _, p := range ChecklistPaths {
		r.Options(p, d.Checklist.Preflight)
		if d.RateLimiter != nil {
			r.With(d.RateLimiter.Handler).Post(p, d.Checklist.Handle)
		} else {
			r.Post(p, d.Checklist.Handle)
		}
	}

	if d.Health != nil {
		r.Get("/health", d.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	return r
}
