package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by route and status code.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "status"},
	)

	// RequestDuration tracks HTTP request latency by route.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ats_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// ATSScores observes every overall score produced.
	ATSScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ats_score",
			Help:    "Distribution of overall ATS scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// ExtractionFallbacks counts degraded document extractions by format and outcome.
	ExtractionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_extraction_fallbacks_total",
			Help: "Number of extractions that fell back to a secondary reader",
		},
		[]string{"format", "outcome"},
	)

	// CacheLookups counts report cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_report_cache_lookups_total",
			Help: "Report cache lookups by result",
		},
		[]string{"result"},
	)
)
