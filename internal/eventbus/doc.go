// Package eventbus implements an in-process publish/subscribe bus keyed by event
// type.
//
// Listeners registered for a Type are invoked one after another, in
// registration order, on the goroutine that called Broadcast. A listener may
// return Stop to end the broadcast early. Listeners may register or remove
// listeners, and broadcast again, from inside Handle: every broadcast iterates
// over a snapshot taken when it started and re-checks the live registry before
// each invocation, so a listener removed mid-dispatch is skipped.
//
// Typed access goes through Topic, which ties a Type to its payload type:
//
//	var Ping = eventbus.NewTopic[PingPayload]("ping")
//
//	sub := eventbus.Listen(reg, Ping, func(ctx context.Context, p PingPayload) (eventbus.Result, error) {
//	    return eventbus.Continue, nil
//	})
//	defer sub.Cancel()
//	err := eventbus.Publish(ctx, reg, Ping, PingPayload{N: 1})
package eventbus
