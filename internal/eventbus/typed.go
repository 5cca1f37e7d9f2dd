package eventbus

import "context"

// Topic ties an event Type to the payload type its listeners receive. A Topic is
// itself an Event and can be broadcast as is.
type Topic[P any] struct {
	typ Type
}

// NewTopic declares a topic for events of type t carrying payloads of type P.
func NewTopic[P any](t Type) Topic[P] { return Topic[P]{typ: t} }

// EventType implements Event.
func (t Topic[P]) EventType() Type { return t.typ }

func (t Topic[P]) String() string { return string(t.typ) }

// Listen registers fn for the topic and returns its handle. A nil registry
// means Default().
func Listen[P any](r *Registry, t Topic[P], fn func(context.Context, P) (Result, error)) *Subscription {
	return listen(r, t.typ, fn)
}

// Publish broadcasts payload on the topic. A nil registry means Default().
func Publish[P any](ctx context.Context, r *Registry, t Topic[P], payload P) error {
	if r == nil {
		r = Default()
	}
	return r.Broadcast(ctx, t, payload)
}
