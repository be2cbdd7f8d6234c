package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Field selection metrics.
var (
	FieldRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "field_requests_total",
			Help:      "Total number of field-list computations",
		},
		[]string{"index_type", "privileged"},
	)

	HiddenFieldsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "hidden_fields_total",
			Help:      "Fields removed from public field lists by element visibility",
		},
		[]string{"index_type"},
	)

	FieldCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "field_cache_total",
			Help:      "Collected-field cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerFieldMetrics sync.Once

// RegisterFieldMetrics registers the field selection metrics. Safe to call more than once.
func RegisterFieldMetrics() {
	registerFieldMetrics.Do(func() {
		prometheus.MustRegister(FieldRequestsTotal)
		prometheus.MustRegister(HiddenFieldsTotal)
		prometheus.MustRegister(FieldCacheTotal)
	})
}

// ObserveFieldRequest counts one field-list computation.
func ObserveFieldRequest(indexType string, privileged bool) {
	FieldRequestsTotal.WithLabelValues(indexType, strconv.FormatBool(privileged)).Inc()
}

// ObserveHidden records how many fields visibility removed.
func ObserveHidden(indexType string, n int) {
	if n > 0 {
		HiddenFieldsTotal.WithLabelValues(indexType).Add(float64(n))
	}
}

// ObserveCache records a collected-field cache lookup.
func ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	FieldCacheTotal.WithLabelValues(result).Inc()
}
