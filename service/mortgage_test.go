package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMortgagePayment(t *testing.T) {
	// 400k over 30 years at 6%
	got := mortgagePayment(400_000, monthlyRate(6), 360)
	assert.InDelta(t, 2398.20, got, 0.01)
}

func TestMortgagePayment_ZeroRate(t *testing.T) {
	assert.InDelta(t, 100.0, mortgagePayment(1200, 0, 12), 1e-9)
	assert.InDelta(t, 12.0, annuityFactor(0, 12), 1e-9)
}

func TestAnnuityFactorInvertsPayment(t *testing.T) {
	i := monthlyRate(7.25)
	payment := mortgagePayment(500_000, i, 360)
	assert.InDelta(t, 500_000, payment*annuityFactor(i, 360), 1e-6)
}

func TestRoundTo2Decimals(t *testing.T) {
	assert.Equal(t, 1234.57, roundTo2Decimals(1234.5678))
	assert.Equal(t, 0.0, roundTo2Decimals(0.001))
}
