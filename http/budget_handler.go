package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"home-budget/domain"
	"home-budget/metrics"
	"home-budget/service"
)

type BudgetHandler struct {
	budget       *service.BudgetService
	sensitivity  *service.RateSensitivityService
	scenarios    *service.ScenarioService
	explanations *service.ExplanationService
	validator    *Validator
	logger       *zap.Logger
}

func NewBudgetHandler(
	budget *service.BudgetService,
	sensitivity *service.RateSensitivityService,
	scenarios *service.ScenarioService,
	explanations *service.ExplanationService,
	logger *zap.Logger,
) *BudgetHandler {
	return &BudgetHandler{
		budget:       budget,
		sensitivity:  sensitivity,
		scenarios:    scenarios,
		explanations: explanations,
		validator:    NewValidator(budget.Cities(), budget.PolicyNames()),
		logger:       logger,
	}
}

// Assumptions exposes the policy, city profile and solver diagnostics behind a result.
type Assumptions struct {
	Policy         domain.Policy      `json:"policy"`
	City           domain.CityProfile `json:"city"`
	MonthlyBudget  float64            `json:"monthly_budget"`
	AdjustedBudget float64            `json:"adjusted_budget"`
	TrustYield     float64            `json:"trust_yield"`
	PaymentCeiling float64            `json:"payment_ceiling"`
	ReserveCeiling float64            `json:"reserve_ceiling"`
	Iterations     int                `json:"iterations"`
}

type CalculateResponse struct {
	HomePrice      float64               `json:"homePrice"`
	LimitingFactor domain.LimitingFactor `json:"limitingFactor"`
	MonthlyCosts   domain.MonthlyCosts   `json:"monthlyCosts"`
	DownPayment    domain.DownPayment    `json:"downPayment"`
	Assumptions    Assumptions           `json:"assumptions"`
	Explanation    string                `json:"explanation"`
	ScenarioID     string                `json:"scenarioId,omitempty"`
}

// validate runs tag validation and range parsing, returning every field error at once.
func (h *BudgetHandler) validate(req CalculateRequest) (domain.ApplicantInput, map[string]string) {
	errs := FormatValidationError(h.validator.ValidateStruct(req))
	input, rangeErrs := req.toInput()
	for field, msg := range rangeErrs {
		if errs == nil {
			errs = make(map[string]string)
		}
		if _, seen := errs[field]; !seen {
			errs[field] = msg
		}
	}
	for field := range errs {
		metrics.ValidationFailures.WithLabelValues(field).Inc()
	}
	return input, errs
}

func (h *BudgetHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if status, ok := decodeBody(r, &req); !ok {
		if status == http.StatusUnsupportedMediaType {
			respondError(w, r, status, ErrMsgUnsupportedMedia)
			return
		}
		respondError(w, r, status, ErrMsgInvalidRequest)
		return
	}

	input, fieldErrs := h.validate(req)
	if len(fieldErrs) > 0 {
		respondJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{Errors: fieldErrs})
		return
	}

	ctx := r.Context()
	result, err := h.budget.Calculate(ctx, input, string(req.Policy))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	policy, _ := h.budget.Policy(result.Policy)
	city, _ := h.budget.Cities().Lookup(input.City)
	resp := buildCalculateResponse(result, policy, city)
	resp.Explanation = h.explanations.Explain(ctx, result)

	// Scenario storage is best effort; the calculation is still returned
	scenario, err := h.scenarios.Save(ctx, SessionFromContext(ctx), "", req, resp)
	if err != nil {
		h.logger.Warn("failed to store scenario", zap.Error(err))
	} else {
		resp.ScenarioID = scenario.ID
	}

	respondJSON(w, r, http.StatusOK, resp)
}

func (h *BudgetHandler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	var req SensitivityRequest
	if status, ok := decodeBody(r, &req); !ok {
		if status == http.StatusUnsupportedMediaType {
			respondError(w, r, status, ErrMsgUnsupportedMedia)
			return
		}
		respondError(w, r, status, ErrMsgInvalidRequest)
		return
	}

	input, fieldErrs := h.validate(req.CalculateRequest)
	if len(fieldErrs) > 0 {
		respondJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{Errors: fieldErrs})
		return
	}

	result, err := h.sensitivity.Analyze(r.Context(), domain.SensitivityInput{
		Base:    input,
		Policy:  string(req.Policy),
		MinRate: req.MinRate,
		MaxRate: req.MaxRate,
		Step:    req.Step,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, result)
}

type CitiesResponse struct {
	Cities   []domain.CityProfile `json:"cities"`
	Policies []string             `json:"policies"`
}

func (h *BudgetHandler) Cities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, CitiesResponse{
		Cities:   h.budget.Cities().Profiles(),
		Policies: h.budget.PolicyNames(),
	})
}

func (h *BudgetHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUnknownCity),
		errors.Is(err, service.ErrInvalidRate):
		respondError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("budget calculation failed", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, ErrMsgCalculationFailed)
	}
}

func buildCalculateResponse(raw domain.BudgetResult, policy domain.Policy, city domain.CityProfile) CalculateResponse {
	r := service.RoundResult(raw)
	a := r.Affordability
	return CalculateResponse{
		HomePrice:      a.HomePrice,
		LimitingFactor: a.LimitingFactor,
		MonthlyCosts:   r.MonthlyCosts,
		DownPayment:    r.DownPayment,
		Assumptions: Assumptions{
			Policy:         policy,
			City:           city,
			MonthlyBudget:  a.MonthlyBudget,
			AdjustedBudget: a.AdjustedBudget,
			TrustYield:     a.TrustYield,
			PaymentCeiling: a.PaymentCeiling,
			ReserveCeiling: a.ReserveCeiling,
			Iterations:     a.Iterations,
		},
	}
}
