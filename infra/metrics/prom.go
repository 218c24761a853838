package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records intent events in Prometheus metrics.
type PromSink struct {
	events  *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewPromSink registers intent metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intent_events_total",
		Help: "Total number of handled webhook intents",
	}, []string{"intent", "success"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "intent_latency_seconds",
		Help:    "Time between intent invocation and spoken response",
		Buckets: prometheus.DefBuckets,
	}, []string{"intent", "success"})

	if err := reg.Register(events); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			events = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{events: events, latency: latency}, nil
}

// RecordIntent increments the event counter and observes the latency.
func (s *PromSink) RecordIntent(res IntentResult) error {
	success := strconv.FormatBool(res.Success)
	s.events.WithLabelValues(res.Intent, success).Inc()
	s.latency.WithLabelValues(res.Intent, success).Observe(res.Duration.Seconds())
	return nil
}
