package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRateLimited,
			Help: HelpTextRateLimited,
		},
	)
)

// Business Metrics
var (
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCalculations,
			Help: HelpTextCalculations,
		},
		[]string{LabelPolicy, LabelLimitingFactor},
	)

	Shortfalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameShortfalls,
			Help: HelpTextShortfalls,
		},
		[]string{LabelPolicy},
	)

	RefineIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameRefineIterations,
			Help:    HelpTextRefineIterations,
			Buckets: RefineIterationsBuckets,
		},
	)

	ScenariosStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameScenariosStored,
			Help: HelpTextScenariosStored,
		},
	)

	ScenariosDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameScenariosDeleted,
			Help: HelpTextScenariosDeleted,
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheLookups,
			Help: HelpTextCacheLookups,
		},
		[]string{LabelOutcome},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameValidationFailures,
			Help: HelpTextValidationFailures,
		},
		[]string{LabelField},
	)
)
