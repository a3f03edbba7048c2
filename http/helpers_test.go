package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"home-budget/config"
	"home-budget/repository"
	"home-budget/service"
)

type testEnv struct {
	router    http.Handler
	budget    *service.BudgetService
	scenarios *service.ScenarioService
	session   string
}

func newTestEnv(t *testing.T, limiter *RateLimiter) *testEnv {
	t.Helper()

	cat, err := config.DefaultCatalog()
	require.NoError(t, err)

	log := zap.NewNop()
	budget := service.NewBudgetService(cat.Cities, cat.Policies, repository.NewMockCache(), log)
	scenarios := service.NewScenarioService(repository.NewScenarioRepositoryMemory(0, time.Hour), log)

	router := NewRouter(RouterDeps{
		Budget:       budget,
		Sensitivity:  service.NewRateSensitivityService(budget, log),
		Scenarios:    scenarios,
		Explanations: service.NewExplanationService("", "", "", log),
		RateLimiter:  limiter,
		SessionTTL:   time.Hour,
		Logger:       log,
	})

	return &testEnv{
		router:    router,
		budget:    budget,
		scenarios: scenarios,
		session:   uuid.NewString(),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: e.session})

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func nycRequest() map[string]any {
	return map[string]any{
		"annualIncome":    "250000",
		"totalSavings":    "250000",
		"hasTrustFund":    "yes",
		"trustFundAmount": "5000000",
		"city":            "NYC",
		"interestRate":    "6",
	}
}
