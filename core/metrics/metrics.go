package metrics

import "time"

// Outcome summarises how a broadcast ended.
type Outcome string

const (
	// OutcomeNoListeners means nothing was registered for the event type.
	OutcomeNoListeners Outcome = "no_listeners"
	// OutcomeDelivered means every live listener of the snapshot was invoked.
	OutcomeDelivered Outcome = "delivered"
	// OutcomeStopped means a listener stopped propagation.
	OutcomeStopped Outcome = "stopped"
	// OutcomeFailed means a listener returned an error.
	OutcomeFailed Outcome = "failed"
	// OutcomeCancelled means the broadcast context ended before all listeners ran.
	OutcomeCancelled Outcome = "cancelled"
)

// BroadcastEvent describes one completed broadcast.
type BroadcastEvent struct {
	EventType string
	// Listeners is the size of the snapshot taken when the broadcast started.
	Listeners int
	// Delivered counts the listeners actually invoked.
	Delivered int
	// Skipped counts snapshot entries removed before their turn.
	Skipped  int
	Outcome  Outcome
	Duration time.Duration
	Time     time.Time
}

// SubscriptionAction names a registry mutation.
type SubscriptionAction string

const (
	ActionOn  SubscriptionAction = "on"
	ActionOff SubscriptionAction = "off"
)

// SubscriptionEvent is recorded whenever a listener is added to or removed from a type.
type SubscriptionEvent struct {
	EventType string
	Action    SubscriptionAction
	// Listeners is the number of listeners left under EventType after the change.
	Listeners int
	Time      time.Time
}

// BusRecorder records event bus activity for observability purposes.
type BusRecorder interface {
	RecordBroadcast(ev BroadcastEvent) error
	RecordSubscription(ev SubscriptionEvent) error
}

// NopSink implements BusRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordBroadcast(BroadcastEvent) error       { return nil }
func (NopSink) RecordSubscription(SubscriptionEvent) error { return nil }

// AppEventRecorder is implemented by sinks able to count application events
// observed on the bus, independently of how they were dispatched.
type AppEventRecorder interface {
	RecordAppEvent(eventType string) error
}

// RecordAppEvent implements AppEventRecorder.
func (NopSink) RecordAppEvent(string) error { return nil }
