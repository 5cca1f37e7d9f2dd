package events

import (
	"time"

	"github.com/kilianp07/nybus/internal/eventbus"
)

// SessionPayload is published when a user session ends.
type SessionPayload struct {
	UserID string    `json:"user_id"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// UserLoggedOut is published after a user logs out or the session expires.
var UserLoggedOut = eventbus.NewTopic[SessionPayload]("user.logged_out")

// LogoutEvent is one UserLoggedOut occurrence. Producers can attach listeners
// to it that run before the registry ones when it goes through Registry.Fire.
type LogoutEvent struct {
	eventbus.Attachments
}

// EventType implements eventbus.Event.
func (*LogoutEvent) EventType() eventbus.Type { return UserLoggedOut.EventType() }
