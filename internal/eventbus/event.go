package eventbus

import (
	"sort"
	"sync"
)

// Type identifies a category of events. Listeners are grouped by Type.
type Type string

func (t Type) String() string { return string(t) }

// Event is anything that happened. Events of the same category must return the
// same Type.
type Event interface {
	EventType() Type
}

// Result is what a listener reports back to the dispatcher.
type Result int

const (
	// Continue lets the broadcast go on. It is the zero value.
	Continue Result = iota
	// Stop halts the broadcast; later listeners are not invoked.
	Stop
)

func (r Result) String() string {
	if r == Stop {
		return "stop"
	}
	return "continue"
}

// EventSetter is implemented by listeners that want to know which event is being
// dispatched to them. SetEvent is called right before each Handle call.
type EventSetter interface {
	SetEvent(Event)
}

// EventRef can be embedded in a listener to satisfy EventSetter. It holds the
// event of the most recent dispatch only.
type EventRef struct {
	mu sync.Mutex
	ev Event
}

// SetEvent records ev as the current event.
func (r *EventRef) SetEvent(ev Event) {
	r.mu.Lock()
	r.ev = ev
	r.mu.Unlock()
}

// Event returns the event of the most recent dispatch, or nil.
func (r *EventRef) Event() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ev
}

// Attachments holds listeners bound directly to one event value instead of the
// registry. Events embed it to take part in Registry.Fire.
type Attachments struct {
	mu        sync.Mutex
	listeners map[string]Listener
}

// Attach binds l under name, replacing any listener already using that name.
func (a *Attachments) Attach(name string, l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listeners == nil {
		a.listeners = make(map[string]Listener)
	}
	a.listeners[name] = l
}

// Detach removes the listener bound under name.
func (a *Attachments) Detach(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.listeners, name)
}

// Attached returns the bound listeners ordered by name.
func (a *Attachments) Attached() []Listener {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.listeners))
	for n := range a.listeners {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Listener, len(names))
	for i, n := range names {
		out[i] = a.listeners[n]
	}
	return out
}

type attacher interface {
	Attached() []Listener
}
