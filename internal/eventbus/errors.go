package eventbus

import "errors"

var (
	// ErrNilEvent is returned when a nil event is broadcast.
	ErrNilEvent = errors.New("eventbus: nil event")
	// ErrPayloadType is returned by callback listeners receiving a payload of the wrong type.
	ErrPayloadType = errors.New("eventbus: unexpected payload type")
)
