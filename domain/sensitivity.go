package domain

type SensitivityInput struct {
	Base    ApplicantInput
	Policy  string
	MinRate float64
	MaxRate float64
	Step    float64
}

type SensitivityPoint struct {
	Rate           float64        `json:"rate"`
	HomePrice      float64        `json:"home_price"`
	MonthlyTotal   float64        `json:"monthly_total"`
	Shortfall      float64        `json:"shortfall"`
	LimitingFactor LimitingFactor `json:"limiting_factor"`
}

type SensitivityResult struct {
	Policy    string             `json:"policy"`
	BestRate  float64            `json:"best_rate"`
	BestPrice float64            `json:"best_price"`
	Points    []SensitivityPoint `json:"points"`
}
