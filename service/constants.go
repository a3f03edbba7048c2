package service

const (
	MinInterestRate = 5.5  // annual %
	MaxInterestRate = 15.0 // annual %

	MaxAnnualIncome = 1_000_000_000.0
	MaxFunds        = 100_000_000_000.0

	// Rate sweep bounds for sensitivity analysis
	DefaultSensitivityStep = 0.5
	MaxSensitivityPoints   = 40
)
