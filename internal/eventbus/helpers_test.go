package eventbus

import (
	"context"
	"sync"

	"github.com/kilianp07/nybus/core/metrics"
)

const (
	pingType Type = "ping"
	pongType Type = "pong"
)

type pingEvent struct{}

func (pingEvent) EventType() Type { return pingType }

type pongEvent struct{}

func (pongEvent) EventType() Type { return pongType }

// journal is a concurrency safe call log shared between listeners.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	j.entries = append(j.entries, s)
	j.mu.Unlock()
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// recordListener is a direct listener writing its name to a journal.
type recordListener struct {
	EventRef
	name     string
	log      *journal
	result   Result
	err      error
	payloads []any
	hook     func(ctx context.Context)

	mu sync.Mutex
}

func (l *recordListener) Handle(ctx context.Context, payload any) (Result, error) {
	l.mu.Lock()
	l.payloads = append(l.payloads, payload)
	l.mu.Unlock()
	if l.log != nil {
		l.log.add(l.name)
	}
	if l.hook != nil {
		l.hook(ctx)
	}
	return l.result, l.err
}

func (l *recordListener) calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.payloads)
}

// captureSink stores every record it receives.
type captureSink struct {
	mu            sync.Mutex
	broadcasts    []metrics.BroadcastEvent
	subscriptions []metrics.SubscriptionEvent
}

func (c *captureSink) RecordBroadcast(ev metrics.BroadcastEvent) error {
	c.mu.Lock()
	c.broadcasts = append(c.broadcasts, ev)
	c.mu.Unlock()
	return nil
}

func (c *captureSink) RecordSubscription(ev metrics.SubscriptionEvent) error {
	c.mu.Lock()
	c.subscriptions = append(c.subscriptions, ev)
	c.mu.Unlock()
	return nil
}

func (c *captureSink) lastBroadcast() metrics.BroadcastEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.broadcasts[len(c.broadcasts)-1]
}
