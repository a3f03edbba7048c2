package http

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"home-budget/domain"
	"home-budget/service"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	Cities        []domain.CityProfile
	Policies      []string
	DefaultPolicy string
	MinRate       float64
	MaxRate       float64
}

type IndexHandler struct {
	page   indexPage
	logger *zap.Logger
}

func NewIndexHandler(budget *service.BudgetService, logger *zap.Logger) *IndexHandler {
	defaultPolicy, _ := budget.Policy("")
	return &IndexHandler{
		page: indexPage{
			Cities:        budget.Cities().Profiles(),
			Policies:      budget.PolicyNames(),
			DefaultPolicy: defaultPolicy.Name,
			MinRate:       service.MinInterestRate,
			MaxRate:       service.MaxInterestRate,
		},
		logger: logger,
	}
}

func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, h.page); err != nil {
		h.logger.Error("render index", zap.Error(err))
	}
}
