package http

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-budget/domain"
)

func TestCalculate_NYCExample(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/calculate", nycRequest())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[CalculateResponse](t, rec)
	assert.InDelta(t, 3_685_627.28, resp.HomePrice, 0.01)
	assert.Equal(t, domain.LimitedByMonthlyPayment, resp.LimitingFactor)
	assert.Equal(t, "classic", resp.Assumptions.Policy.Name)
	assert.Equal(t, "NYC", resp.Assumptions.City.Name)
	assert.Equal(t, 24, resp.Assumptions.Iterations)

	// Money fields are rounded to cents on the way out
	assert.InDelta(t, math.Round(resp.MonthlyCosts.Total*100)/100, resp.MonthlyCosts.Total, 1e-9)
	assert.InDelta(t, 0.2*resp.HomePrice, resp.DownPayment.Required, 0.01)
	assert.Zero(t, resp.DownPayment.Shortfall)

	assert.Contains(t, resp.Explanation, "NYC")
	assert.NotEmpty(t, resp.ScenarioID)
}

func TestCalculate_AutoSavesScenario(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/calculate", nycRequest())
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[CalculateResponse](t, rec)

	scenarios, err := env.scenarios.List(context.Background(), env.session)
	require.NoError(t, err)
	require.Contains(t, scenarios, resp.ScenarioID)
	assert.Contains(t, string(scenarios[resp.ScenarioID].Input), `"city":"NYC"`)
}

func TestCalculate_ExplicitPolicy(t *testing.T) {
	env := newTestEnv(t, nil)

	body := nycRequest()
	body["policy"] = "haircut"

	rec := env.do(t, http.MethodPost, "/calculate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[CalculateResponse](t, rec)
	assert.Equal(t, "haircut", resp.Assumptions.Policy.Name)
	assert.InDelta(t, 2_645_139.01, resp.HomePrice, 0.01)
}

func TestCalculate_AcceptsJSONNumbers(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/calculate", map[string]any{
		"annualIncome":    250000,
		"totalSavings":    250000,
		"hasTrustFund":    true,
		"trustFundAmount": 5000000,
		"city":            "NYC",
		"interestRate":    6,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.InDelta(t, 3_685_627.28, decode[CalculateResponse](t, rec).HomePrice, 0.01)
}

func TestCalculate_FormBody(t *testing.T) {
	env := newTestEnv(t, nil)

	form := url.Values{}
	for k, v := range nycRequest() {
		form.Set(k, v.(string))
	}
	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.InDelta(t, 3_685_627.28, decode[CalculateResponse](t, rec).HomePrice, 0.01)
}

func TestCalculate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   map[string]string
	}{
		{
			name:   "empty body",
			mutate: func(m map[string]any) { clear(m) },
			want: map[string]string{
				"annualIncome": fieldMessages["annualIncome"],
				"totalSavings": fieldMessages["totalSavings"],
				"city":         fieldMessages["city"],
				"interestRate": fieldMessages["interestRate"],
			},
		},
		{
			name:   "unknown city",
			mutate: func(m map[string]any) { m["city"] = "Boston" },
			want:   map[string]string{"city": "Please select a valid city."},
		},
		{
			name:   "rate below range",
			mutate: func(m map[string]any) { m["interestRate"] = "4" },
			want:   map[string]string{"interestRate": "Please enter a valid interest rate between 5.5% and 15%."},
		},
		{
			name:   "rate above range",
			mutate: func(m map[string]any) { m["interestRate"] = "15.5" },
			want:   map[string]string{"interestRate": "Please enter a valid interest rate between 5.5% and 15%."},
		},
		{
			name:   "trust fund amount missing",
			mutate: func(m map[string]any) { delete(m, "trustFundAmount") },
			want:   map[string]string{"trustFundAmount": "Please enter a valid trust fund amount."},
		},
		{
			name:   "negative income",
			mutate: func(m map[string]any) { m["annualIncome"] = "-1" },
			want:   map[string]string{"annualIncome": "Please enter a valid annual income."},
		},
		{
			name: "range and tag failures together",
			mutate: func(m map[string]any) {
				m["totalSavings"] = "-5"
				m["city"] = "Boston"
			},
			want: map[string]string{
				"totalSavings": "Please enter a valid total savings amount.",
				"city":         "Please select a valid city.",
			},
		},
		{
			name:   "non numeric savings",
			mutate: func(m map[string]any) { m["totalSavings"] = "lots" },
			want:   map[string]string{"totalSavings": "Please enter a valid total savings amount."},
		},
		{
			name:   "unknown policy",
			mutate: func(m map[string]any) { m["policy"] = "generous" },
			want:   map[string]string{"policy": "Please select a valid policy."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			body := nycRequest()
			tt.mutate(body)

			rec := env.do(t, http.MethodPost, "/calculate", body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, decode[ValidationErrorResponse](t, rec).Errors)
		})
	}
}

func TestCalculate_TrustAmountWithoutTrustFund(t *testing.T) {
	env := newTestEnv(t, nil)

	body := nycRequest()
	body["hasTrustFund"] = "no"
	body["trustFundAmount"] = "not a number"

	rec := env.do(t, http.MethodPost, "/calculate", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ValidationErrorResponse](t, rec).Errors, "trustFundAmount")

	body["trustFundAmount"] = ""
	rec = env.do(t, http.MethodPost, "/calculate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Zero(t, decode[CalculateResponse](t, rec).MonthlyCosts.TrustFundCredit)
}

func TestCalculate_RejectsBadBodies(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader("annualIncome: 1"))
	req.Header.Set("Content-Type", "text/yaml")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestSensitivity(t *testing.T) {
	env := newTestEnv(t, nil)

	body := nycRequest()
	body["minRate"] = 5.5
	body["maxRate"] = 7.5
	body["step"] = 0.5

	rec := env.do(t, http.MethodPost, "/calculate/sensitivity", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[domain.SensitivityResult](t, rec)
	require.Len(t, resp.Points, 5)
	assert.Equal(t, 5.5, resp.Points[0].Rate)
	assert.Equal(t, 7.5, resp.Points[4].Rate)
	for _, p := range resp.Points {
		assert.LessOrEqual(t, p.HomePrice, resp.BestPrice)
	}
}

func TestSensitivity_InvalidRange(t *testing.T) {
	env := newTestEnv(t, nil)

	body := nycRequest()
	body["minRate"] = 9
	body["maxRate"] = 6

	rec := env.do(t, http.MethodPost, "/calculate/sensitivity", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCities(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/cities", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[CitiesResponse](t, rec)
	names := make([]string, 0, len(resp.Cities))
	for _, c := range resp.Cities {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"NYC", "Greenwich CT", "Nassau County", "Ridgewood NJ", "Summit NJ"}, names)
	assert.Contains(t, resp.Policies, "classic")
}

func TestIndex_RendersForm(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `<option value="Greenwich CT">`)
	assert.Contains(t, rec.Body.String(), `<option value="classic" selected>`)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/readyz", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/metrics", nil).Code)
}

func TestSensitivity_TinyStepIsRejected(t *testing.T) {
	env := newTestEnv(t, nil)

	body := nycRequest()
	body["step"] = 1e-300

	rec := env.do(t, http.MethodPost, "/calculate/sensitivity", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}
