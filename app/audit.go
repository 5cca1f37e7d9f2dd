package app

import (
	"context"
	"sync/atomic"

	"github.com/kilianp07/nybus/infra/logger"
	"github.com/kilianp07/nybus/internal/eventbus"
)

// AuditListener logs every event it receives. One instance is registered under
// every catalogue event type, so the event type is read from the dispatch
// context rather than from shared listener state.
type AuditListener struct {
	log   logger.Logger
	count atomic.Int64
}

// NewAuditListener returns an AuditListener writing to l.
func NewAuditListener(l logger.Logger) *AuditListener {
	if l == nil {
		l = logger.NopLogger{}
	}
	return &AuditListener{log: l}
}

func (a *AuditListener) Handle(ctx context.Context, payload any) (eventbus.Result, error) {
	a.count.Add(1)
	typ := ""
	if ev, ok := eventbus.EventFromContext(ctx); ok {
		typ = ev.EventType().String()
	}
	a.log.Debugw("event delivered", map[string]any{"event_type": typ, "payload": payload})
	return eventbus.Continue, nil
}

// Count returns the number of events seen so far.
func (a *AuditListener) Count() int64 { return a.count.Load() }
