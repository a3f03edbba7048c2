package domain

import (
	"errors"
	"fmt"
	"sort"
)

type BudgetMode string

const (
	BudgetIncomeRatio    BudgetMode = "income_ratio"
	BudgetIncomeMultiple BudgetMode = "income_multiple"
)

// Policy parameterizes the affordability, allocation and trust credit rules.
type Policy struct {
	Name                   string     `json:"name" toml:"name"`
	BudgetMode             BudgetMode `json:"budget_mode" toml:"budget_mode"`
	IncomeRatio            float64    `json:"income_ratio" toml:"income_ratio"`
	IncomeMultiple         float64    `json:"income_multiple" toml:"income_multiple"`
	DownPaymentRatio       float64    `json:"down_payment_ratio" toml:"down_payment_ratio"`
	TermMonths             int        `json:"term_months" toml:"term_months"`
	InsuranceRate          float64    `json:"insurance_rate" toml:"insurance_rate"`
	TrustThreshold         float64    `json:"trust_threshold" toml:"trust_threshold"`
	TrustYieldRate         float64    `json:"trust_yield_rate" toml:"trust_yield_rate"`
	TrustHaircut           float64    `json:"trust_haircut" toml:"trust_haircut"`
	ReserveSavingsShare    float64    `json:"reserve_savings_share" toml:"reserve_savings_share"`
	SavingsCap             float64    `json:"savings_cap" toml:"savings_cap"`
	IncomeDrawRate         float64    `json:"income_draw_rate" toml:"income_draw_rate"`
	TrustCapAboveThreshold float64    `json:"trust_cap_above_threshold" toml:"trust_cap_above_threshold"`
	CreditCapped           bool       `json:"credit_capped" toml:"credit_capped"`
	CreditOnRemainingTrust bool       `json:"credit_on_remaining_trust" toml:"credit_on_remaining_trust"`
	RefineFactor           float64    `json:"refine_factor" toml:"refine_factor"`
	MaxRefineSteps         int        `json:"max_refine_steps" toml:"max_refine_steps"`
}

var ErrInvalidPolicy = errors.New("invalid policy")

// LoanToValue is the financed share of the price.
func (p Policy) LoanToValue() float64 {
	return 1 - p.DownPaymentRatio
}

// TrustEligible reports whether a trust principal earns yield under this policy.
func (p Policy) TrustEligible(principal float64) bool {
	return principal >= p.TrustThreshold
}

// MonthlyTrustYield is the haircut monthly yield on principal, or 0 below the threshold.
func (p Policy) MonthlyTrustYield(principal float64) float64 {
	if !p.TrustEligible(principal) {
		return 0
	}
	return principal * p.TrustYieldRate / 12 * p.TrustHaircut
}

func (p Policy) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidPolicy)
	case p.BudgetMode != BudgetIncomeRatio && p.BudgetMode != BudgetIncomeMultiple:
		return fmt.Errorf("%w: %s: unknown budget mode %q", ErrInvalidPolicy, p.Name, p.BudgetMode)
	case p.DownPaymentRatio <= 0 || p.DownPaymentRatio >= 1:
		return fmt.Errorf("%w: %s: down payment ratio must be in (0,1)", ErrInvalidPolicy, p.Name)
	case p.TermMonths <= 0:
		return fmt.Errorf("%w: %s: term must be positive", ErrInvalidPolicy, p.Name)
	case p.RefineFactor <= 0 || p.RefineFactor >= 1:
		return fmt.Errorf("%w: %s: refine factor must be in (0,1)", ErrInvalidPolicy, p.Name)
	case p.MaxRefineSteps <= 0:
		return fmt.Errorf("%w: %s: max refine steps must be positive", ErrInvalidPolicy, p.Name)
	case p.TrustHaircut < 0 || p.SavingsCap < 0 || p.IncomeDrawRate < 0 || p.TrustCapAboveThreshold < 0:
		return fmt.Errorf("%w: %s: negative share", ErrInvalidPolicy, p.Name)
	}
	return nil
}

// PolicySet is the immutable collection of named policies plus the active default.
type PolicySet struct {
	policies map[string]Policy
	fallback string
}

func NewPolicySet(defaultName string, policies []Policy) (PolicySet, error) {
	s := PolicySet{policies: make(map[string]Policy, len(policies)), fallback: defaultName}
	for _, p := range policies {
		if err := p.Validate(); err != nil {
			return PolicySet{}, err
		}
		s.policies[p.Name] = p
	}
	if _, ok := s.policies[defaultName]; !ok {
		return PolicySet{}, fmt.Errorf("%w: default policy %q not defined", ErrInvalidPolicy, defaultName)
	}
	return s, nil
}

func (s PolicySet) Get(name string) (Policy, bool) {
	p, ok := s.policies[name]
	return p, ok
}

func (s PolicySet) Default() Policy {
	return s.policies[s.fallback]
}

func (s PolicySet) Names() []string {
	names := make([]string, 0, len(s.policies))
	for n := range s.policies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
