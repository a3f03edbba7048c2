package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameCalculations       = "budget_calculations_total"
	MetricNameShortfalls         = "budget_down_payment_shortfalls_total"
	MetricNameRefineIterations   = "budget_refine_iterations"
	MetricNameScenariosStored    = "budget_scenarios_stored_total"
	MetricNameScenariosDeleted   = "budget_scenarios_deleted_total"
	MetricNameCacheLookups       = "budget_cache_lookups_total"
	MetricNameValidationFailures = "budget_validation_failures_total"
	MetricNameRateLimited        = "http_rate_limited_total"
)

// Help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextCalculations       = "Budget calculations by policy and limiting factor"
	HelpTextShortfalls         = "Calculations whose down payment could not be fully funded"
	HelpTextRefineIterations   = "Refinement steps taken by the affordability solver"
	HelpTextScenariosStored    = "Scenarios stored in session storage"
	HelpTextScenariosDeleted   = "Scenarios deleted from session storage"
	HelpTextCacheLookups       = "Result cache lookups by outcome"
	HelpTextValidationFailures = "Rejected calculation requests by field"
	HelpTextRateLimited        = "Requests rejected by the rate limiter"
)

// Labels
const (
	LabelMethod         = "method"
	LabelPath           = "path"
	LabelStatus         = "status"
	LabelPolicy         = "policy"
	LabelLimitingFactor = "limiting_factor"
	LabelOutcome        = "outcome"
	LabelField          = "field"
)

// Cache outcomes
const (
	OutcomeHit  = "hit"
	OutcomeMiss = "miss"
)

var (
	HTTPLatencyBuckets      = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}
	RefineIterationsBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 2000}
)
