package eventbus

import (
	"context"
	"fmt"
)

// Fire is the producer-side shortcut for an event that may carry its own
// listeners. Listeners attached to ev through an embedded Attachments run
// first, ordered by name; unless one of them stops propagation or fails, the
// event is then broadcast through the registry. Events embedding Attachments
// must be passed by pointer.
func (r *Registry) Fire(ctx context.Context, ev Event, payload any) error {
	if ev == nil {
		return ErrNilEvent
	}
	if a, ok := ev.(attacher); ok {
		for i, l := range a.Attached() {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.invoke(ctx, ev, l, payload)
			if err != nil {
				return fmt.Errorf("eventbus: attached listener %d of %s: %w", i, ev.EventType(), err)
			}
			if res == Stop {
				return nil
			}
		}
	}
	return r.Broadcast(ctx, ev, payload)
}
