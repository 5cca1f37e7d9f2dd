package events

import "github.com/kilianp07/nybus/internal/eventbus"

// ThemePayload carries the previous and the new theme identifiers.
type ThemePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// LocalePayload carries the previous and the new locale tags.
type LocalePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

var (
	// ThemeChanged is published when the active theme switches.
	ThemeChanged = eventbus.NewTopic[ThemePayload]("theme.changed")
	// LocaleChanged is published when the active locale switches.
	LocaleChanged = eventbus.NewTopic[LocalePayload]("locale.changed")
)
