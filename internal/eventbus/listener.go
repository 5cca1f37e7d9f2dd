package eventbus

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Listener receives events. Handle gets the payload passed to Broadcast and
// returns Stop to end the broadcast. The dispatched event is available through
// EventFromContext, or through SetEvent when the listener implements EventSetter.
//
// Listeners are matched by identity, so implementations must be comparable;
// pointer receivers are the norm.
type Listener interface {
	Handle(ctx context.Context, payload any) (Result, error)
}

// callbackListener adapts a plain function to Listener. When the function
// returns Stop the adapter removes itself from its registry.
type callbackListener[P any] struct {
	EventRef
	reg       *Registry
	fn        func(context.Context, P) (Result, error)
	cancelled atomic.Bool
}

func newCallbackListener[P any](reg *Registry, fn func(context.Context, P) (Result, error)) *callbackListener[P] {
	return &callbackListener[P]{reg: reg, fn: fn}
}

func (c *callbackListener[P]) Handle(ctx context.Context, payload any) (Result, error) {
	if c.cancelled.Load() {
		return Continue, nil
	}
	var p P
	if payload != nil {
		v, ok := payload.(P)
		if !ok {
			return Continue, fmt.Errorf("%w: got %T, want %T", ErrPayloadType, payload, p)
		}
		p = v
	}
	res, err := c.fn(ctx, p)
	if err != nil {
		return Continue, err
	}
	if res == Stop {
		c.cancelled.Store(true)
		c.reg.RemoveListener(c)
	}
	return res, nil
}

func (c *callbackListener[P]) isCancelled() bool { return c.cancelled.Load() }

// selfCancelling is implemented by listeners that may detach on their own.
type selfCancelling interface {
	Listener
	isCancelled() bool
}
