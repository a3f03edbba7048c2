package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"home-budget/domain"
	"home-budget/repository"
	"home-budget/service"
)

type ScenarioHandler struct {
	service *service.ScenarioService
	logger  *zap.Logger
}

func NewScenarioHandler(service *service.ScenarioService, logger *zap.Logger) *ScenarioHandler {
	return &ScenarioHandler{service: service, logger: logger}
}

type CreateScenarioResponse struct {
	ID string `json:"id"`
}

type ListScenariosResponse struct {
	Scenarios map[string]domain.Scenario `json:"scenarios"`
}

func (h *ScenarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateScenarioRequest
	if status, ok := decodeBody(r, &req); !ok {
		respondError(w, r, status, ErrMsgInvalidRequest)
		return
	}
	if len(req.Input) == 0 || len(req.Result) == 0 {
		respondError(w, r, http.StatusBadRequest, ErrMsgInvalidSnapshot)
		return
	}

	scenario, err := h.service.Create(r.Context(), SessionFromContext(r.Context()), req.Name, req.Input, req.Result)
	if err != nil {
		h.respondError(w, r, err, ErrMsgScenarioSaveFailed)
		return
	}

	respondJSON(w, r, http.StatusCreated, CreateScenarioResponse{ID: scenario.ID})
}

func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.service.List(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, err, ErrMsgScenarioFetchFailed)
		return
	}
	respondJSON(w, r, http.StatusOK, ListScenariosResponse{Scenarios: scenarios})
}

func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.service.Get(r.Context(), SessionFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, ErrMsgScenarioFetchFailed)
		return
	}
	respondJSON(w, r, http.StatusOK, scenario)
}

func (h *ScenarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), SessionFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err, ErrMsgScenarioFetchFailed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScenarioHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrScenarioNotFound):
		respondError(w, r, http.StatusNotFound, ErrMsgScenarioNotFound)
	case errors.Is(err, service.ErrInvalidSnapshot):
		respondError(w, r, http.StatusBadRequest, ErrMsgInvalidSnapshot)
	case errors.Is(err, service.ErrMissingSession):
		respondError(w, r, http.StatusBadRequest, ErrMsgMissingSession)
	default:
		h.logger.Error("scenario operation failed", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, fallback)
	}
}
