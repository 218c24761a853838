package metrics

// MultiSink fans intent events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordIntent forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordIntent(res IntentResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordIntent(res); err != nil {
			return err
		}
	}
	return nil
}
