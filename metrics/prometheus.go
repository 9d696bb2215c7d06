package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder records forecast pipeline metrics in Prometheus.
type Recorder struct {
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	requests      *prometheus.CounterVec
	reqDuration   prometheus.Histogram
	published     *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "elexon_forecast_fetches_total",
				Help: "Total number of remote forecast calls by process type and outcome",
			},
			[]string{"process_type", "outcome"},
		),
		fetchDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "elexon_forecast_fetch_duration_seconds",
				Help:    "Duration of remote forecast calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"process_type"},
		),
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "elexon_forecast_requests_total",
				Help: "Total number of forecast requests by outcome",
			},
			[]string{"outcome"},
		),
		reqDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "elexon_forecast_request_duration_seconds",
				Help:    "Duration of forecast requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		published: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "elexon_forecast_published_total",
				Help: "Total number of forecast snapshots published over MQTT",
			},
			[]string{"business_type", "outcome"},
		),
	}
}

func (r *Recorder) ObserveFetch(processType string, outcome string, d time.Duration) {
	r.fetches.WithLabelValues(processType, outcome).Inc()
	r.fetchDuration.WithLabelValues(processType).Observe(d.Seconds())
}

func (r *Recorder) ObserveRequest(outcome string, d time.Duration) {
	r.requests.WithLabelValues(outcome).Inc()
	r.reqDuration.Observe(d.Seconds())
}

func (r *Recorder) ObservePublish(businessType string, outcome string) {
	r.published.WithLabelValues(businessType, outcome).Inc()
}
