package eventbus

import "context"

type eventKey struct{}

// ContextWithEvent returns a copy of ctx carrying ev.
func ContextWithEvent(ctx context.Context, ev Event) context.Context {
	return context.WithValue(ctx, eventKey{}, ev)
}

// EventFromContext returns the event being dispatched, as seen by a listener.
func EventFromContext(ctx context.Context) (Event, bool) {
	ev, ok := ctx.Value(eventKey{}).(Event)
	return ev, ok
}
