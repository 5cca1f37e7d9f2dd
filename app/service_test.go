package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/nybus/config"
	"github.com/kilianp07/nybus/core/events"
	"github.com/kilianp07/nybus/core/factory"
	"github.com/kilianp07/nybus/internal/eventbus"
)

func TestNewWiresAudit(t *testing.T) {
	svc, err := New(config.Default())
	require.NoError(t, err)
	require.NotNil(t, svc.Audit())

	for _, typ := range events.Types() {
		assert.Equal(t, 1, svc.Registry.ListenerCount(typ))
	}

	ctx := context.Background()
	require.NoError(t, eventbus.Publish(ctx, svc.Registry, events.ThemeChanged, events.ThemePayload{From: "light", To: "dark"}))
	assert.Equal(t, int64(1), svc.Audit().Count())

	require.NoError(t, svc.Close())
	assert.Empty(t, svc.Registry.Types())
}

func TestNewWithoutAudit(t *testing.T) {
	cfg := config.Default()
	off := false
	cfg.Bus.Audit = &off
	svc, err := New(cfg)
	require.NoError(t, err)
	assert.Nil(t, svc.Audit())
	assert.Empty(t, svc.Registry.Types())
}

func TestNewUnknownSink(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "missing"}}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestRunStopsWithContext(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "log", Conf: map[string]any{"level": "error"}}}
	svc, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// the collector adds a second listener per catalogue type
	require.Eventually(t, func() bool {
		return svc.Registry.ListenerCount(events.UserLoggedOut.EventType()) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.NoError(t, svc.Close())
	assert.Eventually(t, func() bool { return len(svc.Registry.Types()) == 0 }, time.Second, 5*time.Millisecond)
}
