package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/nybus/core/logger"
)

func TestListenerTimeout(t *testing.T) {
	reg := New(WithListenerTimeout(20 * time.Millisecond))
	var deadlineSet bool
	slow := &recordListener{hook: func(ctx context.Context) {
		_, deadlineSet = ctx.Deadline()
		<-ctx.Done()
	}}
	next := &recordListener{}
	reg.On(pingType, slow)
	reg.On(pingType, next)

	start := time.Now()
	require.NoError(t, reg.Broadcast(context.Background(), pingEvent{}, nil))
	assert.True(t, deadlineSet)
	assert.Less(t, time.Since(start), 5*time.Second)
	// the timeout only bounds one listener, the broadcast goes on
	assert.Equal(t, 1, next.calls())
}

func TestNoTimeoutByDefault(t *testing.T) {
	reg := New(WithListenerTimeout(0))
	var deadlineSet bool
	reg.On(pingType, &recordListener{hook: func(ctx context.Context) { _, deadlineSet = ctx.Deadline() }})
	require.NoError(t, reg.Broadcast(context.Background(), pingEvent{}, nil))
	assert.False(t, deadlineSet)
}

func TestNilOptionsKeepDefaults(t *testing.T) {
	reg := New(WithLogger(nil), WithRecorder(nil))
	assert.IsType(t, logger.NopLogger{}, reg.log)
	reg.On(pingType, &recordListener{})
	require.NoError(t, reg.Broadcast(context.Background(), pingEvent{}, nil))
}
