package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterFieldMetrics_Idempotent(t *testing.T) {
	RegisterFieldMetrics()
	RegisterFieldMetrics()
}

func TestObserveFieldRequest(t *testing.T) {
	before := testutil.ToFloat64(FieldRequestsTotal.WithLabelValues("term", "false"))
	ObserveFieldRequest("term", false)
	if got := testutil.ToFloat64(FieldRequestsTotal.WithLabelValues("term", "false")); got != before+1 {
		t.Errorf("field_requests_total = %f, want %f", got, before+1)
	}
}

func TestObserveHidden(t *testing.T) {
	before := testutil.ToFloat64(HiddenFieldsTotal.WithLabelValues("informationObject"))
	ObserveHidden("informationObject", 3)
	ObserveHidden("informationObject", 0)
	if got := testutil.ToFloat64(HiddenFieldsTotal.WithLabelValues("informationObject")); got != before+3 {
		t.Errorf("hidden_fields_total = %f, want %f", got, before+3)
	}
}

func TestObserveCache(t *testing.T) {
	hits := testutil.ToFloat64(FieldCacheTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(FieldCacheTotal.WithLabelValues("miss"))
	ObserveCache(true)
	ObserveCache(false)
	ObserveCache(false)
	if got := testutil.ToFloat64(FieldCacheTotal.WithLabelValues("hit")); got != hits+1 {
		t.Errorf("hits = %f, want %f", got, hits+1)
	}
	if got := testutil.ToFloat64(FieldCacheTotal.WithLabelValues("miss")); got != misses+2 {
		t.Errorf("misses = %f, want %f", got, misses+2)
	}
}
