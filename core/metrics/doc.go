// Package metrics defines how the event bus reports what it does. A BusRecorder
// receives one BroadcastEvent per broadcast and one SubscriptionEvent per
// registry change. Sinks are built from configuration through the factory
// registry; NewBusRecorder returns a MultiSink when several are configured.
package metrics
