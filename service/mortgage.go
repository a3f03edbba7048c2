package service

import "math"

// roundTo2Decimals rounds a currency figure for output.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func monthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / 12
}

// annuityFactor is the present value of 1 paid monthly for n months at rate i.
func annuityFactor(i float64, n int) float64 {
	if i == 0 {
		return float64(n)
	}
	return (1 - math.Pow(1+i, -float64(n))) / i
}

// mortgagePayment is the fixed monthly payment amortizing loan over n months.
func mortgagePayment(loan, i float64, n int) float64 {
	if i == 0 {
		return loan / float64(n)
	}
	growth := math.Pow(1+i, float64(n))
	return loan * i * growth / (growth - 1)
}
