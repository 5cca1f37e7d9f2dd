package config

import (
	"fmt"
	"time"
)

// BusConfig tunes the event registry.
type BusConfig struct {
	// ListenerTimeoutMS bounds each listener invocation. Zero means no bound.
	ListenerTimeoutMS int `json:"listener_timeout_ms"`
	// Audit logs every catalogue event delivered on the bus.
	Audit *bool `json:"audit"`
}

// SetDefaults applies sane defaults.
func (c *BusConfig) SetDefaults() {
	if c.Audit == nil {
		audit := true
		c.Audit = &audit
	}
}

// Validate checks the timeout is not negative.
func (c BusConfig) Validate() error {
	if c.ListenerTimeoutMS < 0 {
		return fmt.Errorf("listener_timeout_ms must not be negative, got %d", c.ListenerTimeoutMS)
	}
	return nil
}

// ListenerTimeout returns the per-listener bound as a duration.
func (c BusConfig) ListenerTimeout() time.Duration {
	return time.Duration(c.ListenerTimeoutMS) * time.Millisecond
}

// AuditEnabled reports whether the audit listener should be installed.
func (c BusConfig) AuditEnabled() bool {
	return c.Audit == nil || *c.Audit
}
