package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/nybus/core/metrics"
)

func TestPromSink_RecordBroadcast(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordBroadcast(coremetrics.BroadcastEvent{
		EventType: "ping",
		Listeners: 3,
		Delivered: 2,
		Skipped:   1,
		Outcome:   coremetrics.OutcomeStopped,
		Duration:  15 * time.Millisecond,
	}))
	require.NoError(t, sink.RecordBroadcast(coremetrics.BroadcastEvent{
		EventType: "pong",
		Outcome:   coremetrics.OutcomeNoListeners,
	}))

	expected := `
# HELP eventbus_broadcasts_total Total number of broadcasts by event type and outcome
# TYPE eventbus_broadcasts_total counter
eventbus_broadcasts_total{event_type="ping",outcome="stopped"} 1
eventbus_broadcasts_total{event_type="pong",outcome="no_listeners"} 1
`
	if err := testutil.CollectAndCompare(sink.broadcasts, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.deliveries.WithLabelValues("ping")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.skipped.WithLabelValues("ping")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.duration))
}

func TestPromSink_RecordSubscriptionAndAppEvent(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordSubscription(coremetrics.SubscriptionEvent{EventType: "ping", Action: coremetrics.ActionOn, Listeners: 2}))
	require.NoError(t, sink.RecordSubscription(coremetrics.SubscriptionEvent{EventType: "ping", Action: coremetrics.ActionOff, Listeners: 1}))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.listeners.WithLabelValues("ping")))

	require.NoError(t, sink.RecordAppEvent("theme.changed"))
	require.NoError(t, sink.RecordAppEvent("theme.changed"))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.appEvents.WithLabelValues("theme.changed")))
}

// Registering twice on the same registry reuses the existing collectors.
func TestPromSink_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, second.RecordAppEvent("x"))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.appEvents.WithLabelValues("x")))
}
