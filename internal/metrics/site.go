package metrics

import "github.com/prometheus/client_golang/prometheus"

// Site Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propwijzer",
			Name:      "searches_total",
			Help:      "Total number of search queries served",
		},
		[]string{"outcome"}, // "hit" / "empty" / "short"
	)

	QuizResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propwijzer",
			Name:      "quiz_results_total",
			Help:      "Total number of computed quiz recommendations",
		},
		[]string{"firm"},
	)

	AffiliateClicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propwijzer",
			Name:      "affiliate_clicks_total",
			Help:      "Total number of outbound affiliate redirects",
		},
		[]string{"firm"},
	)
)

var siteMetricsRegistered bool

// RegisterSiteMetrics registers site-level Prometheus metrics. Must be called once from main.
func RegisterSiteMetrics() {
	if siteMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(QuizResultsTotal)
	prometheus.MustRegister(AffiliateClicksTotal)
	siteMetricsRegistered = true
}
