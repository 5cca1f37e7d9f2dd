package metrics

import (
	"github.com/kilianp07/nybus/core/logger"
	coremetrics "github.com/kilianp07/nybus/core/metrics"
)

// LogSink writes bus records as structured debug logs.
type LogSink struct {
	log logger.Logger
}

// NewLogSink returns a LogSink writing to l.
func NewLogSink(l logger.Logger) *LogSink {
	if l == nil {
		l = logger.NopLogger{}
	}
	return &LogSink{log: l}
}

func (s *LogSink) RecordBroadcast(ev coremetrics.BroadcastEvent) error {
	s.log.Debugw("broadcast", map[string]any{
		"event_type": ev.EventType,
		"outcome":    string(ev.Outcome),
		"listeners":  ev.Listeners,
		"delivered":  ev.Delivered,
		"skipped":    ev.Skipped,
		"duration":   ev.Duration.String(),
	})
	return nil
}

func (s *LogSink) RecordSubscription(ev coremetrics.SubscriptionEvent) error {
	s.log.Debugw("subscription", map[string]any{
		"event_type": ev.EventType,
		"action":     string(ev.Action),
		"listeners":  ev.Listeners,
	})
	return nil
}

func (s *LogSink) RecordAppEvent(eventType string) error {
	s.log.Infof("application event %s", eventType)
	return nil
}
