package metrics

import "errors"

// MultiSink fans out bus records to multiple sinks.
type MultiSink struct {
	Sinks []BusRecorder
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...BusRecorder) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBroadcast forwards the record to every sink and joins their errors.
func (m *MultiSink) RecordBroadcast(ev BroadcastEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordBroadcast(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordSubscription forwards the record to every sink and joins their errors.
func (m *MultiSink) RecordSubscription(ev SubscriptionEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordSubscription(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordAppEvent forwards to the sinks that count application events.
func (m *MultiSink) RecordAppEvent(eventType string) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(AppEventRecorder); ok {
			if err := rec.RecordAppEvent(eventType); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
