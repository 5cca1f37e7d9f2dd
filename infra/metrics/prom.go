package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/nybus/core/metrics"
)

// PromSink records bus activity in Prometheus metrics.
type PromSink struct {
	broadcasts *prometheus.CounterVec
	deliveries *prometheus.CounterVec
	skipped    *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	listeners  *prometheus.GaugeVec
	appEvents  *prometheus.CounterVec
}

// NewPromSink registers bus metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	broadcasts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eventbus_broadcasts_total",
		Help: "Total number of broadcasts by event type and outcome",
	}, []string{"event_type", "outcome"})
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eventbus_listener_invocations_total",
		Help: "Total number of listener invocations",
	}, []string{"event_type"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eventbus_listeners_skipped_total",
		Help: "Listeners removed between the snapshot and their turn",
	}, []string{"event_type"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eventbus_broadcast_duration_seconds",
		Help:    "Time spent dispatching one broadcast",
		Buckets: prometheus.DefBuckets,
	}, []string{"event_type"})
	listeners := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "eventbus_listeners",
		Help: "Number of listeners currently registered",
	}, []string{"event_type"})
	appEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "app_events_total",
		Help: "Application events observed on the bus",
	}, []string{"event_type"})

	var err error
	if broadcasts, err = register(reg, broadcasts); err != nil {
		return nil, err
	}
	if deliveries, err = register(reg, deliveries); err != nil {
		return nil, err
	}
	if skipped, err = register(reg, skipped); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if listeners, err = register(reg, listeners); err != nil {
		return nil, err
	}
	if appEvents, err = register(reg, appEvents); err != nil {
		return nil, err
	}
	return &PromSink{
		broadcasts: broadcasts,
		deliveries: deliveries,
		skipped:    skipped,
		duration:   duration,
		listeners:  listeners,
		appEvents:  appEvents,
	}, nil
}

// register returns the already registered collector when c was registered before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordBroadcast counts the broadcast and its deliveries.
func (s *PromSink) RecordBroadcast(ev coremetrics.BroadcastEvent) error {
	s.broadcasts.WithLabelValues(ev.EventType, string(ev.Outcome)).Inc()
	if ev.Outcome == coremetrics.OutcomeNoListeners {
		return nil
	}
	s.deliveries.WithLabelValues(ev.EventType).Add(float64(ev.Delivered))
	s.skipped.WithLabelValues(ev.EventType).Add(float64(ev.Skipped))
	s.duration.WithLabelValues(ev.EventType).Observe(ev.Duration.Seconds())
	return nil
}

// RecordSubscription sets the listener gauge of the event type.
func (s *PromSink) RecordSubscription(ev coremetrics.SubscriptionEvent) error {
	s.listeners.WithLabelValues(ev.EventType).Set(float64(ev.Listeners))
	return nil
}

// RecordAppEvent counts an application event.
func (s *PromSink) RecordAppEvent(eventType string) error {
	s.appEvents.WithLabelValues(eventType).Inc()
	return nil
}
