package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"home-budget/domain"
	"home-budget/metrics"
	"home-budget/repository"
)

type BudgetService struct {
	cities   domain.CityTable
	policies domain.PolicySet
	cache    repository.CacheRepository
	logger   *zap.Logger
}

// NewBudgetService creates a BudgetService over an immutable city table and policy set.
func NewBudgetService(
	cities domain.CityTable,
	policies domain.PolicySet,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *BudgetService {
	return &BudgetService{
		cities:   cities,
		policies: policies,
		cache:    cache,
		logger:   logger.Named("budget"),
	}
}

func (s *BudgetService) Cities() domain.CityTable {
	return s.cities
}

// Policy resolves a policy by name; an empty name selects the default.
func (s *BudgetService) Policy(name string) (domain.Policy, error) {
	if name == "" {
		return s.policies.Default(), nil
	}
	p, ok := s.policies.Get(name)
	if !ok {
		return domain.Policy{}, fmt.Errorf("%w: unknown policy %q", ErrInvalidInput, name)
	}
	return p, nil
}

func (s *BudgetService) PolicyNames() []string {
	return s.policies.Names()
}

// Calculate runs solve -> allocate -> estimate for a validated input.
func (s *BudgetService) Calculate(
	ctx context.Context,
	input domain.ApplicantInput,
	policyName string,
) (domain.BudgetResult, error) {
	policy, err := s.Policy(policyName)
	if err != nil {
		return domain.BudgetResult{}, err
	}
	city, ok := s.cities.Lookup(input.City)
	if !ok {
		return domain.BudgetResult{}, fmt.Errorf("%w: %q", ErrUnknownCity, input.City)
	}

	key := cacheKey(input, policy.Name)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.BudgetResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			metrics.CacheLookups.WithLabelValues(metrics.OutcomeHit).Inc()
			return result, nil
		}
		s.logger.Warn("discarding undecodable cached result", zap.String("key", key))
	}
	metrics.CacheLookups.WithLabelValues(metrics.OutcomeMiss).Inc()

	result, err := Compute(input, city, policy)
	if err != nil {
		return domain.BudgetResult{}, err
	}

	metrics.Calculations.WithLabelValues(policy.Name, string(result.Affordability.LimitingFactor)).Inc()
	metrics.RefineIterations.Observe(float64(result.Affordability.Iterations))
	if result.DownPayment.Shortfall > 0 {
		metrics.Shortfalls.WithLabelValues(policy.Name).Inc()
	}

	// A cache write failure is not fatal
	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(payload)); err != nil {
			s.logger.Warn("failed to cache budget result", zap.Error(err))
		}
	}

	s.logger.Debug("budget calculated",
		zap.String("policy", policy.Name),
		zap.String("city", input.City),
		zap.Float64("home_price", result.Affordability.HomePrice),
		zap.String("limiting_factor", string(result.Affordability.LimitingFactor)),
		zap.Int("iterations", result.Affordability.Iterations),
	)

	return result, nil
}

// Compute is the pure pipeline behind Calculate.
func Compute(
	input domain.ApplicantInput,
	city domain.CityProfile,
	policy domain.Policy,
) (domain.BudgetResult, error) {
	afford, err := SolveAffordability(input, city, policy)
	if err != nil {
		return domain.BudgetResult{}, err
	}

	trust := input.TrustFund()
	down := AllocateDownPayment(
		afford.HomePrice,
		input.TotalSavings,
		input.AnnualIncome,
		trust,
		policy,
	)

	costs := EstimateMonthlyCosts(
		afford.HomePrice,
		city,
		input.InterestRate,
		creditBasis(input, afford.HomePrice, policy),
		policy,
	)

	return domain.BudgetResult{
		Input:         input,
		Affordability: afford,
		MonthlyCosts:  costs,
		DownPayment:   down,
		Policy:        policy.Name,
	}, nil
}

func cacheKey(in domain.ApplicantInput, policy string) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return strings.Join([]string{
		policy,
		in.City,
		f(in.AnnualIncome),
		f(in.TotalSavings),
		f(in.TrustFund()),
		f(in.InterestRate),
	}, "|")
}

// RoundResult rounds every currency figure to cents for output.
func RoundResult(r domain.BudgetResult) domain.BudgetResult {
	a := &r.Affordability
	a.HomePrice = roundTo2Decimals(a.HomePrice)
	a.PaymentCeiling = roundTo2Decimals(a.PaymentCeiling)
	a.ReserveCeiling = roundTo2Decimals(a.ReserveCeiling)
	a.MonthlyBudget = roundTo2Decimals(a.MonthlyBudget)
	a.AdjustedBudget = roundTo2Decimals(a.AdjustedBudget)
	a.TrustYield = roundTo2Decimals(a.TrustYield)

	c := &r.MonthlyCosts
	c.Mortgage = roundTo2Decimals(c.Mortgage)
	c.PropertyTax = roundTo2Decimals(c.PropertyTax)
	c.Insurance = roundTo2Decimals(c.Insurance)
	c.HOA = roundTo2Decimals(c.HOA)
	c.TrustFundCredit = roundTo2Decimals(c.TrustFundCredit)
	c.Total = roundTo2Decimals(c.Total)

	d := &r.DownPayment
	d.Total = roundTo2Decimals(d.Total)
	d.FromSavings = roundTo2Decimals(d.FromSavings)
	d.FromIncome = roundTo2Decimals(d.FromIncome)
	d.FromTrust = roundTo2Decimals(d.FromTrust)
	d.Shortfall = roundTo2Decimals(d.Shortfall)
	d.Required = roundTo2Decimals(d.Required)
	d.RemainingSavings = roundTo2Decimals(d.RemainingSavings)
	d.RemainingTrust = roundTo2Decimals(d.RemainingTrust)

	return r
}
