package eventbus

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is the handle returned by Listen. Cancel detaches the listener;
// it is safe to call any number of times.
type Subscription struct {
	id       string
	typ      Type
	reg      *Registry
	listener selfCancelling
	active   atomic.Bool
}

// ID returns a unique identifier for the subscription.
func (s *Subscription) ID() string { return s.id }

// Type returns the event type the subscription listens to.
func (s *Subscription) Type() Type { return s.typ }

// IsActive reports whether the listener is still attached. It turns false after
// Cancel or once the callback returned Stop.
func (s *Subscription) IsActive() bool {
	return s.active.Load() && !s.listener.isCancelled()
}

// Cancel removes the listener from the registry. Only the first call has an effect.
func (s *Subscription) Cancel() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	s.reg.Off(s.typ, s.listener)
	s.reg.log.Debugw("subscription cancelled", map[string]any{"event_type": s.typ.String(), "subscription": s.id})
}

// ListenType registers fn for events of type t and returns its handle. fn
// receives the raw payload. A nil registry means Default().
func ListenType(r *Registry, t Type, fn func(context.Context, any) (Result, error)) *Subscription {
	return listen(r, t, fn)
}

func listen[P any](r *Registry, t Type, fn func(context.Context, P) (Result, error)) *Subscription {
	if r == nil {
		r = Default()
	}
	l := newCallbackListener(r, fn)
	r.On(t, l)
	s := &Subscription{id: uuid.NewString(), typ: t, reg: r, listener: l}
	s.active.Store(true)
	return s
}
