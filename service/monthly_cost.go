package service

import (
	"math"

	"home-budget/domain"
)

// EstimateMonthlyCosts breaks down the monthly cost of owning a home at price.
// trustBasis is the principal the credit is computed on.
func EstimateMonthlyCosts(
	price float64,
	city domain.CityProfile,
	interestRate float64,
	trustBasis float64,
	policy domain.Policy,
) domain.MonthlyCosts {
	price = math.Max(price, 0)
	i := monthlyRate(interestRate)

	costs := domain.MonthlyCosts{
		Mortgage:    mortgagePayment(price*policy.LoanToValue(), i, policy.TermMonths),
		PropertyTax: price * city.TaxRate / 12,
		Insurance:   price * policy.InsuranceRate / 12,
		HOA:         city.HOA,
	}

	preCredit := costs.PreCreditTotal()
	credit := policy.MonthlyTrustYield(trustBasis)
	if policy.CreditCapped {
		credit = math.Min(credit, preCredit)
	}

	costs.TrustFundCredit = credit
	costs.Total = preCredit - credit
	return costs
}
