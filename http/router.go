package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"home-budget/metrics"
	"home-budget/service"
)

type RouterDeps struct {
	Budget       *service.BudgetService
	Sensitivity  *service.RateSensitivityService
	Scenarios    *service.ScenarioService
	Explanations *service.ExplanationService
	RateLimiter  *RateLimiter
	SessionTTL   time.Duration
	Logger       *zap.Logger
}

// NewRouter wires every route behind the shared middleware stack.
func NewRouter(deps RouterDeps) http.Handler {
	budgetHandler := NewBudgetHandler(deps.Budget, deps.Sensitivity, deps.Scenarios, deps.Explanations, deps.Logger)
	scenarioHandler := NewScenarioHandler(deps.Scenarios, deps.Logger)
	healthHandler := NewHealthHandler(deps.Scenarios, deps.Logger)
	indexHandler := NewIndexHandler(deps.Budget, deps.Logger)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(1 << 20))
	r.Use(metrics.Middleware)
	r.Use(LoggingMiddleware(deps.Logger))

	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(deps.SessionTTL))

		r.Get("/", indexHandler.Index)
		r.Get("/cities", budgetHandler.Cities)

		r.Group(func(r chi.Router) {
			if deps.RateLimiter != nil {
				r.Use(RateLimitMiddleware(deps.RateLimiter))
			}
			r.Post("/calculate", budgetHandler.Calculate)
			r.Post("/calculate/sensitivity", budgetHandler.Sensitivity)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Post("/", scenarioHandler.Create)
			r.Get("/", scenarioHandler.List)
			r.Get("/{id}", scenarioHandler.Get)
			r.Delete("/{id}", scenarioHandler.Delete)
		})
	})

	return r
}
