package events

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kilianp07/nybus/core/factory"
	"github.com/kilianp07/nybus/internal/eventbus"
)

// Types lists every catalogue event type, sorted.
func Types() []eventbus.Type {
	types := []eventbus.Type{
		UserLoggedOut.EventType(),
		ThemeChanged.EventType(),
		LocaleChanged.EventType(),
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Lookup resolves an event type from its name, case-insensitively.
func Lookup(name string) (eventbus.Type, bool) {
	for _, t := range Types() {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}

// NewEvent returns a fresh event value for t. Event types whose occurrences
// accept attached listeners get their own value; the others are their topic.
func NewEvent(t eventbus.Type) eventbus.Event {
	if t == UserLoggedOut.EventType() {
		return &LogoutEvent{}
	}
	return eventbus.NewTopic[any](t)
}

// Decode builds the typed payload of the event type t from loosely typed
// fields, as given on a command line.
func Decode(t eventbus.Type, fields map[string]any) (any, error) {
	switch t {
	case UserLoggedOut.EventType():
		var p SessionPayload
		if err := factory.Decode(fields, &p); err != nil {
			return nil, err
		}
		if p.At.IsZero() {
			p.At = time.Now()
		}
		return p, nil
	case ThemeChanged.EventType():
		var p ThemePayload
		err := factory.Decode(fields, &p)
		return p, err
	case LocaleChanged.EventType():
		var p LocalePayload
		err := factory.Decode(fields, &p)
		return p, err
	default:
		return nil, fmt.Errorf("unknown event type %q", t)
	}
}
