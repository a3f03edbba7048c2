package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-budget/domain"
)

func TestSolveAffordability_NYCWorkedExample(t *testing.T) {
	policy := testPolicy(t, "classic")
	city := testCity(t, "NYC")
	input := nycExample()

	result, err := SolveAffordability(input, city, policy)
	require.NoError(t, err)

	// 250000/12*0.28
	assert.InDelta(t, 5833.33, result.MonthlyBudget, 0.01)
	// 5,000,000*0.04/12
	assert.InDelta(t, 16666.67, result.TrustYield, 0.01)
	assert.InDelta(t, 22500.00, result.AdjustedBudget, 0.01)

	// 22500 * (1-1.005^-360)/0.005 / 0.8
	assert.InDelta(t, 4_691_014.15, result.PaymentCeiling, 0.01)
	// (250,000 + 5,000,000) / 0.2
	assert.InDelta(t, 26_250_000.0, result.ReserveCeiling, 1e-6)

	// The trust yield lifts the payment ceiling, yet it stays far below the reserve ceiling.
	assert.Equal(t, domain.LimitedByMonthlyPayment, result.LimitingFactor)

	assert.Equal(t, 24, result.Iterations)
	assert.InDelta(t, 3_685_627.28, result.HomePrice, 0.5)
}

func TestSolveAffordability_HaircutVariant(t *testing.T) {
	policy := testPolicy(t, "haircut")

	result, err := SolveAffordability(nycExample(), testCity(t, "NYC"), policy)
	require.NoError(t, err)

	assert.InDelta(t, 11666.67, result.TrustYield, 0.01)
	// (0.35*250,000 + 5,000,000) / 0.2
	assert.InDelta(t, 25_437_500.0, result.ReserveCeiling, 1e-6)
	assert.Equal(t, domain.LimitedByMonthlyPayment, result.LimitingFactor)
	assert.Equal(t, 32, result.Iterations)
	assert.InDelta(t, 2_645_139.01, result.HomePrice, 0.5)
}

func TestSolveAffordability_CreditOnRemainingTrust(t *testing.T) {
	city := testCity(t, "NYC")

	tests := []struct {
		policy     string
		trust      float64
		price      float64
		iterations int
	}{
		{"haircut", 5_000_000, 2_645_139.01, 32},
		{"haircut", 1_100_000, 929_781.22, 63},
		{"uncapped", 5_000_000, 3_333_215.25, 34},
		// The draw pushes the remaining trust under the threshold until the price is small enough.
		{"uncapped", 1_100_000, 826_170.65, 87},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%.0f", tt.policy, tt.trust), func(t *testing.T) {
			policy := testPolicy(t, tt.policy)
			in := nycExample()
			in.TrustFundAmount = tt.trust

			result, err := Compute(in, city, policy)
			require.NoError(t, err)

			a := result.Affordability
			assert.InDelta(t, tt.price, a.HomePrice, 0.5)
			assert.Equal(t, tt.iterations, a.Iterations)
			assert.LessOrEqual(t, result.MonthlyCosts.Total, a.MonthlyBudget)
		})
	}
}

func TestSolveAffordability_DownPaymentLimited(t *testing.T) {
	input := domain.ApplicantInput{
		AnnualIncome: 150_000,
		TotalSavings: 40_000,
		City:         "NYC",
		InterestRate: 6,
	}

	result, err := SolveAffordability(input, testCity(t, "NYC"), testPolicy(t, "classic"))
	require.NoError(t, err)

	assert.Equal(t, domain.LimitedByDownPayment, result.LimitingFactor)
	assert.Equal(t, 0, result.Iterations)
	assert.InDelta(t, 200_000.0, result.HomePrice, 1e-6)
}

func TestSolveAffordability_RefinementKeepsLimitingFactor(t *testing.T) {
	input := domain.ApplicantInput{
		AnnualIncome: 150_000,
		TotalSavings: 100_000,
		City:         "NYC",
		InterestRate: 6,
	}

	result, err := SolveAffordability(input, testCity(t, "NYC"), testPolicy(t, "classic"))
	require.NoError(t, err)

	assert.Equal(t, domain.LimitedByDownPayment, result.LimitingFactor)
	assert.Equal(t, 15, result.Iterations)
	assert.Less(t, result.HomePrice, result.ReserveCeiling)
}

func TestSolveAffordability_NoFunds(t *testing.T) {
	input := domain.ApplicantInput{
		AnnualIncome: 30_000,
		City:         "Ridgewood NJ",
		InterestRate: 15,
	}

	result, err := SolveAffordability(input, testCity(t, "Ridgewood NJ"), testPolicy(t, "classic"))
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.HomePrice)
	assert.Equal(t, domain.LimitedByDownPayment, result.LimitingFactor)
	assert.Equal(t, 0, result.Iterations)
}

func TestSolveAffordability_HOAAboveBudgetCollapses(t *testing.T) {
	// 30000/12*0.28 = 700 per month, below the 1000 NYC HOA on its own.
	input := domain.ApplicantInput{
		AnnualIncome: 30_000,
		TotalSavings: 100_000,
		City:         "NYC",
		InterestRate: 6,
	}
	policy := testPolicy(t, "classic")

	result, err := SolveAffordability(input, testCity(t, "NYC"), policy)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.HomePrice)
	assert.Equal(t, policy.MaxRefineSteps, result.Iterations)
}

func TestSolveAffordability_TrustThreshold(t *testing.T) {
	policy := testPolicy(t, "classic")
	city := testCity(t, "Nassau County")

	below := domain.ApplicantInput{
		AnnualIncome:    150_000,
		TotalSavings:    100_000,
		HasTrustFund:    true,
		TrustFundAmount: 999_999,
		City:            "Nassau County",
		InterestRate:    7,
	}
	at := below
	at.TrustFundAmount = 1_000_000

	rBelow, err := SolveAffordability(below, city, policy)
	require.NoError(t, err)
	rAt, err := SolveAffordability(at, city, policy)
	require.NoError(t, err)

	assert.Equal(t, 0.0, rBelow.TrustYield)
	assert.InDelta(t, 3333.33, rAt.TrustYield, 0.01)
	assert.InDelta(t, 435_513.76, rBelow.HomePrice, 0.5)
	assert.InDelta(t, 885_167.92, rAt.HomePrice, 0.5)
}

func TestSolveAffordability_TrustIgnoredWhenNotFlagged(t *testing.T) {
	input := nycExample()
	input.HasTrustFund = false

	result, err := SolveAffordability(input, testCity(t, "NYC"), testPolicy(t, "classic"))
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.TrustYield)
	assert.InDelta(t, 1_250_000.0, result.ReserveCeiling, 1e-6)
}

func TestSolveAffordability_IncomeMultiple(t *testing.T) {
	policy := testPolicy(t, "legacy")
	input := domain.ApplicantInput{
		AnnualIncome: 100_000,
		TotalSavings: 1_000_000,
		City:         "Summit NJ",
		InterestRate: 6,
	}

	result, err := SolveAffordability(input, testCity(t, "Summit NJ"), policy)
	require.NoError(t, err)

	// Without trust yield the payment ceiling reconstructs 4x income.
	assert.InDelta(t, 400_000.0, result.PaymentCeiling, 0.01)
	assert.Equal(t, domain.LimitedByMonthlyPayment, result.LimitingFactor)
	assert.Less(t, result.HomePrice, 400_000.0)
}

func TestSolveAffordability_InvalidRate(t *testing.T) {
	input := nycExample()
	input.InterestRate = 0

	_, err := SolveAffordability(input, testCity(t, "NYC"), testPolicy(t, "classic"))
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestCompute_PriceFitsBudgetUnderEveryPolicy(t *testing.T) {
	cat := testCatalog(t)

	incomes := []float64{40_000, 120_000, 250_000, 900_000}
	savings := []float64{0, 50_000, 400_000}
	trusts := []float64{0, 500_000, 999_999, 1_000_000, 1_100_000, 5_000_000}
	rates := []float64{5.5, 8, 15}

	for _, policyName := range cat.Policies.Names() {
		policy := testPolicy(t, policyName)
		for _, cityName := range cat.Cities.Names() {
			city := testCity(t, cityName)
			for _, inc := range incomes {
				for _, s := range savings {
					for _, tr := range trusts {
						for _, r := range rates {
							in := domain.ApplicantInput{
								AnnualIncome:    inc,
								TotalSavings:    s,
								HasTrustFund:    tr > 0,
								TrustFundAmount: tr,
								City:            cityName,
								InterestRate:    r,
							}
							res, err := Compute(in, city, policy)
							require.NoError(t, err)

							a := res.Affordability
							assert.LessOrEqual(t, a.HomePrice, a.PaymentCeiling+1e-6)
							assert.LessOrEqual(t, a.HomePrice, a.ReserveCeiling+1e-6)
							if a.HomePrice == 0 {
								continue
							}

							assert.LessOrEqual(t, res.MonthlyCosts.Total, a.MonthlyBudget+1e-6,
								"%s %s income=%v savings=%v trust=%v rate=%v",
								policyName, cityName, inc, s, tr, r)
						}
					}
				}
			}
		}
	}
}
