package service

import (
	"math"

	"home-budget/domain"
)

// AllocateDownPayment draws the required down payment from savings, then income,
// then the trust fund, each capped independently. Unmet need is the shortfall.
func AllocateDownPayment(
	price float64,
	savings float64,
	annualIncome float64,
	trust float64,
	policy domain.Policy,
) domain.DownPayment {
	required := math.Max(price, 0) * policy.DownPaymentRatio
	savings = math.Max(savings, 0)
	trust = math.Max(trust, 0)

	fromSavings := math.Min(savings*policy.SavingsCap, required)
	remaining := required - fromSavings

	fromIncome := math.Min(math.Max(annualIncome, 0)*policy.IncomeDrawRate, remaining)
	remaining -= fromIncome

	trustCap := trust
	if policy.TrustEligible(trust) {
		trustCap = trust * policy.TrustCapAboveThreshold
	}
	fromTrust := math.Min(trustCap, remaining)

	total := fromSavings + fromIncome + fromTrust

	return domain.DownPayment{
		Total:            total,
		FromSavings:      fromSavings,
		FromIncome:       fromIncome,
		FromTrust:        fromTrust,
		Shortfall:        math.Max(0, required-total),
		Required:         required,
		RemainingSavings: savings - fromSavings,
		RemainingTrust:   trust - fromTrust,
	}
}
