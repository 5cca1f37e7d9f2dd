package eventbus

import (
	"time"

	"github.com/kilianp07/nybus/core/logger"
	"github.com/kilianp07/nybus/core/metrics"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for subscription and dispatch traces.
func WithLogger(l logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithRecorder sets the sink receiving broadcast and subscription records.
func WithRecorder(rec metrics.BusRecorder) Option {
	return func(r *Registry) {
		if rec != nil {
			r.rec = rec
		}
	}
}

// WithListenerTimeout bounds each listener invocation. Handle receives a context
// that is cancelled after d; a listener ignoring its context still blocks the
// broadcast. Zero disables the bound.
func WithListenerTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}
