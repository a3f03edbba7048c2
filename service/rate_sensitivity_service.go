package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"home-budget/domain"
)

type RateSensitivityService struct {
	budgetService *BudgetService
	logger        *zap.Logger
}

func NewRateSensitivityService(budgetService *BudgetService, logger *zap.Logger) *RateSensitivityService {
	return &RateSensitivityService{
		budgetService: budgetService,
		logger:        logger.Named("sensitivity"),
	}
}

// Analyze sweeps the interest rate across [MinRate, MaxRate] and reruns the budget
// pipeline at every step.
func (s *RateSensitivityService) Analyze(
	ctx context.Context,
	input domain.SensitivityInput,
) (domain.SensitivityResult, error) {
	if input.MinRate == 0 {
		input.MinRate = MinInterestRate
	}
	if input.MaxRate == 0 {
		input.MaxRate = MaxInterestRate
	}
	if input.Step == 0 {
		input.Step = DefaultSensitivityStep
	}

	if input.MinRate < MinInterestRate || input.MaxRate > MaxInterestRate {
		return domain.SensitivityResult{}, fmt.Errorf(
			"%w: rates must be within %.1f%% and %.1f%%", ErrInvalidInput, MinInterestRate, MaxInterestRate)
	}
	if input.MinRate > input.MaxRate {
		return domain.SensitivityResult{}, fmt.Errorf("%w: min rate above max rate", ErrInvalidInput)
	}
	if input.Step <= 0 {
		return domain.SensitivityResult{}, fmt.Errorf("%w: step must be positive", ErrInvalidInput)
	}

	// Bounded in float space so a tiny step cannot overflow the int conversion
	points := math.Floor((input.MaxRate-input.MinRate)/input.Step+1e-9) + 1
	if points > MaxSensitivityPoints {
		return domain.SensitivityResult{}, fmt.Errorf(
			"%w: rate sweep exceeds %d points", ErrInvalidInput, MaxSensitivityPoints)
	}
	count := int(points)

	out := domain.SensitivityResult{Points: make([]domain.SensitivityPoint, 0, count)}

	for k := 0; k < count; k++ {
		rate := math.Round((input.MinRate+float64(k)*input.Step)*1e4) / 1e4

		scenario := input.Base
		scenario.InterestRate = rate

		result, err := s.budgetService.Calculate(ctx, scenario, input.Policy)
		if err != nil {
			return domain.SensitivityResult{}, fmt.Errorf("rate %.2f: %w", rate, err)
		}
		out.Policy = result.Policy

		point := domain.SensitivityPoint{
			Rate:           rate,
			HomePrice:      roundTo2Decimals(result.Affordability.HomePrice),
			MonthlyTotal:   roundTo2Decimals(result.MonthlyCosts.Total),
			Shortfall:      roundTo2Decimals(result.DownPayment.Shortfall),
			LimitingFactor: result.Affordability.LimitingFactor,
		}
		out.Points = append(out.Points, point)

		if k == 0 || point.HomePrice > out.BestPrice {
			out.BestRate = rate
			out.BestPrice = point.HomePrice
		}
	}

	s.logger.Debug("rate sensitivity computed",
		zap.Int("points", len(out.Points)),
		zap.Float64("best_rate", out.BestRate),
	)

	return out, nil
}
