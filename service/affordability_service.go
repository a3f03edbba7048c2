package service

import (
	"errors"

	"home-budget/domain"
)

var (
	ErrInvalidRate  = errors.New("interest rate must be positive")
	ErrUnknownCity  = errors.New("unknown city")
	ErrInvalidInput = errors.New("invalid input")
)

// SolveAffordability derives the maximum supportable home price.
//
// The payment ceiling inverts the annuity formula on the monthly budget plus trust
// yield; the reserve ceiling assumes the available funds cover exactly the required
// down payment. The lower of the two wins. Because tax, insurance and HOA are not part
// of the inversion, the chosen price is then shrunk by RefineFactor until the full
// monthly obligation, after the trust credit actually granted at that price, fits the
// unadjusted budget.
func SolveAffordability(
	input domain.ApplicantInput,
	city domain.CityProfile,
	policy domain.Policy,
) (domain.AffordabilityResult, error) {
	if input.InterestRate <= 0 {
		return domain.AffordabilityResult{}, ErrInvalidRate
	}
	if input.AnnualIncome < 0 || input.TotalSavings < 0 {
		return domain.AffordabilityResult{}, ErrInvalidInput
	}

	i := monthlyRate(input.InterestRate)
	n := policy.TermMonths
	ltv := policy.LoanToValue()
	trust := input.TrustFund()
	yield := policy.MonthlyTrustYield(trust)

	budget := monthlyBudget(input.AnnualIncome, i, n, policy)
	adjusted := budget + yield

	paymentCeiling := adjusted * annuityFactor(i, n) / ltv
	reserveCeiling := (policy.ReserveSavingsShare*input.TotalSavings + trust) / policy.DownPaymentRatio

	price, factor := paymentCeiling, domain.LimitedByMonthlyPayment
	if reserveCeiling < paymentCeiling {
		price, factor = reserveCeiling, domain.LimitedByDownPayment
	}

	// Same figure the pipeline reports, credit included
	obligation := func(p float64) float64 {
		basis := creditBasis(input, p, policy)
		return EstimateMonthlyCosts(p, city, input.InterestRate, basis, policy).Total
	}

	steps := 0
	for price > 0 && obligation(price) > budget {
		if steps == policy.MaxRefineSteps {
			price = 0
			break
		}
		price *= policy.RefineFactor
		steps++
	}

	return domain.AffordabilityResult{
		HomePrice:      price,
		LimitingFactor: factor,
		PaymentCeiling: paymentCeiling,
		ReserveCeiling: reserveCeiling,
		MonthlyBudget:  budget,
		AdjustedBudget: adjusted,
		TrustYield:     yield,
		Iterations:     steps,
	}, nil
}

// creditBasis is the trust principal the monthly credit is computed on at price.
// With CreditOnRemainingTrust that is whatever the down payment leaves in the trust.
func creditBasis(input domain.ApplicantInput, price float64, policy domain.Policy) float64 {
	trust := input.TrustFund()
	if !policy.CreditOnRemainingTrust {
		return trust
	}
	return AllocateDownPayment(price, input.TotalSavings, input.AnnualIncome, trust, policy).RemainingTrust
}

// monthlyBudget is the housing payment capacity before trust yield.
// In income_multiple mode it is the payment that carries a price of IncomeMultiple x income.
func monthlyBudget(annualIncome, i float64, n int, policy domain.Policy) float64 {
	if policy.BudgetMode == domain.BudgetIncomeMultiple {
		target := annualIncome * policy.IncomeMultiple
		return mortgagePayment(target*policy.LoanToValue(), i, n)
	}
	return annualIncome / 12 * policy.IncomeRatio
}
