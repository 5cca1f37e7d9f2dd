package metrics

import (
	"context"

	coremetrics "github.com/kilianp07/nybus/core/metrics"
	"github.com/kilianp07/nybus/internal/eventbus"
)

// StartEventCollector listens to the given event types and counts each event on
// sink. The subscriptions are cancelled when ctx ends; the returned handles can
// also be cancelled directly.
func StartEventCollector(ctx context.Context, reg *eventbus.Registry, types []eventbus.Type, sink coremetrics.AppEventRecorder) []*eventbus.Subscription {
	if reg == nil || sink == nil {
		return nil
	}
	subs := make([]*eventbus.Subscription, 0, len(types))
	for _, t := range types {
		name := t.String()
		subs = append(subs, eventbus.ListenType(reg, t, func(context.Context, any) (eventbus.Result, error) {
			return eventbus.Continue, sink.RecordAppEvent(name)
		}))
	}
	go func() {
		<-ctx.Done()
		for _, s := range subs {
			s.Cancel()
		}
	}()
	return subs
}
