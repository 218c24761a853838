// Package metrics records per-intent observability events. Sinks like
// PromSink and InfluxSink record the outcome and latency of each webhook
// intent and can be combined with NewMultiSink.
package metrics

import "time"

// IntentResult is one handled webhook intent.
type IntentResult struct {
	Intent   string
	Success  bool
	Duration time.Duration
}

// Sink records intent results for observability purposes.
type Sink interface {
	RecordIntent(res IntentResult) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordIntent(IntentResult) error { return nil }
