// Package metrics exposes Prometheus instrumentation for the recommendation engine
// and its HTTP surface. Collectors register with the default registry on import.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog Metrics
	CatalogRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "petai_catalog_refresh_duration_seconds",
			Help:    "Duration of catalog refreshes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogRefreshErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petai_catalog_refresh_errors_total",
			Help: "Total number of failed catalog refreshes",
		},
	)

	CatalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "petai_catalog_products",
			Help: "Number of products in the current catalog snapshot",
		},
	)

	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "petai_catalog_version",
			Help: "Version of the current catalog snapshot",
		},
	)

	CatalogDuplicates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "petai_catalog_duplicate_compare_ids",
			Help: "Number of duplicated compareIds in the current catalog snapshot",
		},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petai_recommendations_total",
			Help: "Total number of recommendation requests by sort option",
		},
		[]string{"sort"},
	)

	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "petai_recommendation_results",
			Help:    "Number of products returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	ComparisonsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petai_comparisons_total",
			Help: "Total number of product comparisons built",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petai_cache_hits_total",
			Help: "Total number of memo cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petai_cache_misses_total",
			Help: "Total number of memo cache misses",
		},
		[]string{"cache_type"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petai_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petai_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petai_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the per-IP rate limiter",
		},
	)
)

// RecordCatalogRefresh records the outcome of one catalog refresh
func RecordCatalogRefresh(duration time.Duration, version uint64, products, duplicates int, err error) {
	CatalogRefreshDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogRefreshErrors.Inc()
		return
	}
	CatalogVersion.Set(float64(version))
	CatalogProducts.Set(float64(products))
	CatalogDuplicates.Set(float64(duplicates))
}

// RecordRecommendation records a served recommendation list
func RecordRecommendation(sort string, results int) {
	RecommendationsServed.WithLabelValues(sort).Inc()
	RecommendationResults.Observe(float64(results))
}

// RecordComparison records a built comparison
func RecordComparison() {
	ComparisonsServed.Inc()
}

// RecordCacheLookup records a memo cache hit or miss
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitRejection records a request rejected by the rate limiter
func RecordRateLimitRejection() {
	RateLimitRejections.Inc()
}
