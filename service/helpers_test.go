package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"home-budget/config"
	"home-budget/domain"
	"home-budget/repository"
)

func testCatalog(t *testing.T) config.Catalog {
	t.Helper()
	cat, err := config.DefaultCatalog()
	require.NoError(t, err)
	return cat
}

func testPolicy(t *testing.T, name string) domain.Policy {
	t.Helper()
	p, ok := testCatalog(t).Policies.Get(name)
	require.True(t, ok, "policy %s", name)
	return p
}

func testCity(t *testing.T, name string) domain.CityProfile {
	t.Helper()
	c, ok := testCatalog(t).Cities.Lookup(name)
	require.True(t, ok, "city %s", name)
	return c
}

func newTestBudgetService(t *testing.T, cache repository.CacheRepository) *BudgetService {
	t.Helper()
	cat := testCatalog(t)
	return NewBudgetService(cat.Cities, cat.Policies, cache, zap.NewNop())
}

func nycExample() domain.ApplicantInput {
	return domain.ApplicantInput{
		AnnualIncome:    250_000,
		TotalSavings:    250_000,
		HasTrustFund:    true,
		TrustFundAmount: 5_000_000,
		City:            "NYC",
		InterestRate:    6,
	}
}
