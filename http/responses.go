package http

import (
	"net/http"

	"github.com/go-chi/render"
)

// Client-facing messages. Internal error details are never echoed back.
const (
	ErrMsgInvalidRequest      = "Invalid request body"
	ErrMsgUnsupportedMedia    = "Content-Type must be application/json or application/x-www-form-urlencoded"
	ErrMsgCalculationFailed   = "Failed to calculate budget"
	ErrMsgScenarioNotFound    = "Scenario not found"
	ErrMsgScenarioSaveFailed  = "Failed to save scenario"
	ErrMsgScenarioFetchFailed = "Failed to fetch scenarios"
	ErrMsgInvalidSnapshot     = "Scenario input and result must be valid JSON"
	ErrMsgMissingSession      = "Missing session"
	ErrMsgRateLimited         = "rate limit exceeded"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, ErrorResponse{Error: message})
}

// decodeBody accepts JSON and urlencoded form bodies.
func decodeBody(r *http.Request, v interface{}) (int, bool) {
	switch render.GetRequestContentType(r) {
	case render.ContentTypeJSON, render.ContentTypeForm:
	default:
		return http.StatusUnsupportedMediaType, false
	}
	if err := render.Decode(r, v); err != nil {
		return http.StatusBadRequest, false
	}
	return http.StatusOK, true
}
