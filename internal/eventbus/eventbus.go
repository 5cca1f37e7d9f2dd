package eventbus

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/kilianp07/nybus/core/logger"
	"github.com/kilianp07/nybus/core/metrics"
)

// Registry maps event types to their ordered listeners and dispatches events to
// them. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	listeners map[Type][]Listener

	log     logger.Logger
	rec     metrics.BusRecorder
	timeout time.Duration
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		listeners: make(map[Type][]Listener),
		log:       logger.NopLogger{},
		rec:       metrics.NopSink{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// On registers l for events of type t. Registering the same listener twice for
// the same type is a no-op.
func (r *Registry) On(t Type, l Listener) {
	r.mu.Lock()
	ls := r.listeners[t]
	if slices.Contains(ls, l) {
		r.mu.Unlock()
		return
	}
	r.listeners[t] = append(ls, l)
	n := len(ls) + 1
	r.mu.Unlock()

	r.log.Debugw("listener registered", map[string]any{"event_type": t.String(), "listeners": n})
	r.recordSubscription(t, metrics.ActionOn, n)
}

// Off removes l from type t. The type is forgotten once its last listener is gone.
func (r *Registry) Off(t Type, l Listener) {
	r.mu.Lock()
	n, removed := r.removeLocked(t, l)
	r.mu.Unlock()
	if removed {
		r.logRemoval(t, n)
	}
}

// RemoveListener removes l from every type it is registered under.
func (r *Registry) RemoveListener(l Listener) {
	type removal struct {
		t Type
		n int
	}
	var removed []removal
	r.mu.Lock()
	for t := range r.listeners {
		if n, ok := r.removeLocked(t, l); ok {
			removed = append(removed, removal{t: t, n: n})
		}
	}
	r.mu.Unlock()
	for _, rm := range removed {
		r.logRemoval(rm.t, rm.n)
	}
}

func (r *Registry) removeLocked(t Type, l Listener) (int, bool) {
	ls := r.listeners[t]
	i := slices.Index(ls, l)
	if i < 0 {
		return len(ls), false
	}
	ls = slices.Delete(ls, i, i+1)
	if len(ls) == 0 {
		delete(r.listeners, t)
		return 0, true
	}
	r.listeners[t] = ls
	return len(ls), true
}

func (r *Registry) logRemoval(t Type, n int) {
	r.log.Debugw("listener removed", map[string]any{"event_type": t.String(), "listeners": n})
	r.recordSubscription(t, metrics.ActionOff, n)
}

// HasListeners reports whether anything is registered for t.
func (r *Registry) HasListeners(t Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.listeners[t]
	return ok
}

// ListenerCount returns the number of listeners registered for t.
func (r *Registry) ListenerCount(t Type) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners[t])
}

// Types returns the event types that currently have listeners, sorted.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	types := make([]Type, 0, len(r.listeners))
	for t := range r.listeners {
		types = append(types, t)
	}
	r.mu.RUnlock()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Clear removes all listeners.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.listeners = make(map[Type][]Listener)
	r.mu.Unlock()
	r.log.Debugf("registry cleared")
}

// Broadcast delivers ev and payload to the listeners registered for
// ev.EventType(), in registration order, on the calling goroutine.
//
// The listener list is snapshotted first. Before each invocation the live
// registry is checked again and listeners removed since the snapshot are
// skipped. A listener returning Stop ends the broadcast. A listener error ends
// the broadcast and is returned wrapped; later listeners are not invoked. If ctx
// is done before a listener's turn, ctx.Err() is returned.
func (r *Registry) Broadcast(ctx context.Context, ev Event, payload any) error {
	if ev == nil {
		return ErrNilEvent
	}
	t := ev.EventType()
	stats := metrics.BroadcastEvent{EventType: t.String(), Time: time.Now()}

	snapshot := r.snapshot(t)
	if len(snapshot) == 0 {
		stats.Outcome = metrics.OutcomeNoListeners
		r.recordBroadcast(stats)
		return nil
	}
	stats.Listeners = len(snapshot)

	var err error
	stats.Outcome, err = r.dispatch(ctx, t, ev, payload, snapshot, &stats)
	stats.Duration = time.Since(stats.Time)
	r.recordBroadcast(stats)
	return err
}

func (r *Registry) snapshot(t Type) []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.listeners[t])
}

func (r *Registry) registered(t Type, l Listener) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.listeners[t], l)
}

// dispatch runs the snapshot in order, skipping listeners no longer registered
// under t at their turn.
func (r *Registry) dispatch(ctx context.Context, t Type, ev Event, payload any, snapshot []Listener, stats *metrics.BroadcastEvent) (metrics.Outcome, error) {
	for i, l := range snapshot {
		if err := ctx.Err(); err != nil {
			return metrics.OutcomeCancelled, err
		}
		if !r.registered(t, l) {
			stats.Skipped++
			continue
		}
		stats.Delivered++
		res, err := r.invoke(ctx, ev, l, payload)
		if err != nil {
			return metrics.OutcomeFailed, fmt.Errorf("eventbus: listener %d of %s: %w", i, t, err)
		}
		if res == Stop {
			r.log.Debugw("propagation stopped", map[string]any{"event_type": t.String(), "position": i})
			return metrics.OutcomeStopped, nil
		}
	}
	return metrics.OutcomeDelivered, nil
}

func (r *Registry) invoke(ctx context.Context, ev Event, l Listener, payload any) (Result, error) {
	if s, ok := l.(EventSetter); ok {
		s.SetEvent(ev)
	}
	ctx = ContextWithEvent(ctx, ev)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return l.Handle(ctx, payload)
}

func (r *Registry) recordBroadcast(ev metrics.BroadcastEvent) {
	if err := r.rec.RecordBroadcast(ev); err != nil {
		r.log.Warnf("record broadcast %s: %v", ev.EventType, err)
	}
}

func (r *Registry) recordSubscription(t Type, action metrics.SubscriptionAction, n int) {
	ev := metrics.SubscriptionEvent{EventType: t.String(), Action: action, Listeners: n, Time: time.Now()}
	if err := r.rec.RecordSubscription(ev); err != nil {
		r.log.Warnf("record subscription %s: %v", t, err)
	}
}
