package http

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"home-budget/domain"
)

// formValue accepts both the string values the web form posts and plain JSON
// numbers or booleans from API clients.
type formValue string

func (v *formValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
		return nil
	case bytes.Equal(b, []byte("true")):
		*v = "yes"
		return nil
	case bytes.Equal(b, []byte("false")):
		*v = "no"
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = formValue(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = formValue(n.String())
	return nil
}

func (v formValue) float() (float64, error) {
	return strconv.ParseFloat(string(v), 64)
}

// CalculateRequest is the body of POST /calculate.
type CalculateRequest struct {
	AnnualIncome    formValue `json:"annualIncome" form:"annualIncome" validate:"required,number"`
	TotalSavings    formValue `json:"totalSavings" form:"totalSavings" validate:"required,number"`
	HasTrustFund    formValue `json:"hasTrustFund" form:"hasTrustFund" validate:"omitempty,oneof=yes no"`
	TrustFundAmount formValue `json:"trustFundAmount" form:"trustFundAmount" validate:"required_if=HasTrustFund yes,omitempty,number"`
	City            formValue `json:"city" form:"city" validate:"required,city"`
	InterestRate    formValue `json:"interestRate" form:"interestRate" validate:"required,interest_rate"`
	Policy          formValue `json:"policy,omitempty" form:"policy" validate:"omitempty,policy"`
}

// toInput converts a validated request. Fields that pass the tag rules but still
// fall outside the supported ranges are reported in the returned map.
func (req CalculateRequest) toInput() (domain.ApplicantInput, map[string]string) {
	errs := make(map[string]string)
	in := domain.ApplicantInput{
		City:         string(req.City),
		HasTrustFund: req.HasTrustFund == "yes",
	}

	parse := func(field string, v formValue, limit float64) float64 {
		f, err := v.float()
		if err != nil || f < 0 || f > limit {
			errs[field] = fieldMessages[field]
			return 0
		}
		return f
	}

	in.AnnualIncome = parse("annualIncome", req.AnnualIncome, maxAnnualIncome)
	in.TotalSavings = parse("totalSavings", req.TotalSavings, maxFunds)
	if in.HasTrustFund {
		in.TrustFundAmount = parse("trustFundAmount", req.TrustFundAmount, maxFunds)
	}
	in.InterestRate = parse("interestRate", req.InterestRate, maxInterestRate)

	if len(errs) > 0 {
		return domain.ApplicantInput{}, errs
	}
	return in, nil
}

// SensitivityRequest is the body of POST /calculate/sensitivity.
type SensitivityRequest struct {
	CalculateRequest
	MinRate float64 `json:"minRate"`
	MaxRate float64 `json:"maxRate"`
	Step    float64 `json:"step"`
}

type CreateScenarioRequest struct {
	Name   string          `json:"name"`
	Input  json.RawMessage `json:"input"`
	Result json.RawMessage `json:"result"`
}
