package domain

type LimitingFactor string

const (
	LimitedByMonthlyPayment LimitingFactor = "monthly_payment"
	LimitedByDownPayment    LimitingFactor = "down_payment"
)

type ApplicantInput struct {
	AnnualIncome    float64 `json:"annual_income"`
	TotalSavings    float64 `json:"total_savings"`
	HasTrustFund    bool    `json:"has_trust_fund"`
	TrustFundAmount float64 `json:"trust_fund_amount"`
	City            string  `json:"city"`
	InterestRate    float64 `json:"interest_rate"` // annual percentage
}

// TrustFund returns the principal that counts toward the calculation.
func (in ApplicantInput) TrustFund() float64 {
	if !in.HasTrustFund || in.TrustFundAmount < 0 {
		return 0
	}
	return in.TrustFundAmount
}

type AffordabilityResult struct {
	HomePrice      float64        `json:"home_price"`
	LimitingFactor LimitingFactor `json:"limiting_factor"`
	PaymentCeiling float64        `json:"payment_ceiling"`
	ReserveCeiling float64        `json:"reserve_ceiling"`
	MonthlyBudget  float64        `json:"monthly_budget"`
	AdjustedBudget float64        `json:"adjusted_budget"`
	TrustYield     float64        `json:"trust_yield"`
	Iterations     int            `json:"iterations"`
}

type MonthlyCosts struct {
	Mortgage        float64 `json:"mortgage"`
	PropertyTax     float64 `json:"property_tax"`
	Insurance       float64 `json:"insurance"`
	HOA             float64 `json:"hoa"`
	TrustFundCredit float64 `json:"trust_fund_credit"`
	Total           float64 `json:"total"`
}

// PreCreditTotal is the monthly obligation before the trust fund credit.
func (c MonthlyCosts) PreCreditTotal() float64 {
	return c.Mortgage + c.PropertyTax + c.Insurance + c.HOA
}

type DownPayment struct {
	Total            float64 `json:"total"`
	FromSavings      float64 `json:"from_savings"`
	FromIncome       float64 `json:"from_income"`
	FromTrust        float64 `json:"from_trust"`
	Shortfall        float64 `json:"shortfall"`
	Required         float64 `json:"required"`
	RemainingSavings float64 `json:"remaining_savings"`
	RemainingTrust   float64 `json:"remaining_trust"`
}

type BudgetResult struct {
	Input         ApplicantInput      `json:"input"`
	Affordability AffordabilityResult `json:"affordability"`
	MonthlyCosts  MonthlyCosts        `json:"monthly_costs"`
	DownPayment   DownPayment         `json:"down_payment"`
	Policy        string              `json:"policy"`
}
