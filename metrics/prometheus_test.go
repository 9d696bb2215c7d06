package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.ObserveFetch("Day Ahead", "ok", 120*time.Millisecond)
	r.ObserveFetch("Day Ahead", "ok", 80*time.Millisecond)
	r.ObserveFetch("Intraday Total", "failed", time.Second)
	r.ObserveRequest("ok", 300*time.Millisecond)
	r.ObservePublish("Solar", "ok")

	if got := testutil.ToFloat64(r.fetches.WithLabelValues("Day Ahead", "ok")); got != 2 {
		t.Errorf("got %f day ahead fetches, wanted 2", got)
	}
	if got := testutil.ToFloat64(r.fetches.WithLabelValues("Intraday Total", "failed")); got != 1 {
		t.Errorf("got %f failed fetches, wanted 1", got)
	}
	if got := testutil.ToFloat64(r.requests.WithLabelValues("ok")); got != 1 {
		t.Errorf("got %f requests, wanted 1", got)
	}
	if got := testutil.ToFloat64(r.published.WithLabelValues("Solar", "ok")); got != 1 {
		t.Errorf("got %f publishes, wanted 1", got)
	}

	// A second recorder on its own registry must not collide.
	New(prometheus.NewRegistry())
}
