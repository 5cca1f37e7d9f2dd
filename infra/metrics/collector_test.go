package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/nybus/internal/eventbus"
)

type countSink struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countSink) RecordAppEvent(t string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[t]++
	return nil
}

func (c *countSink) get(t string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[t]
}

func TestStartEventCollector(t *testing.T) {
	reg := eventbus.New()
	sink := &countSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	theme := eventbus.NewTopic[string]("theme.changed")
	subs := StartEventCollector(ctx, reg, []eventbus.Type{theme.EventType(), "locale.changed"}, sink)
	require.Len(t, subs, 2)

	require.NoError(t, eventbus.Publish(ctx, reg, theme, "dark"))
	require.NoError(t, eventbus.Publish(ctx, reg, theme, "light"))
	assert.Equal(t, 2, sink.get("theme.changed"))
	assert.Zero(t, sink.get("locale.changed"))

	cancel()
	assert.Eventually(t, func() bool { return !reg.HasListeners(theme.EventType()) }, time.Second, 5*time.Millisecond)
}

func TestStartEventCollectorNilArgs(t *testing.T) {
	assert.Nil(t, StartEventCollector(context.Background(), nil, nil, &countSink{}))
	assert.Nil(t, StartEventCollector(context.Background(), eventbus.New(), nil, nil))
}
