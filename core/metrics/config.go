package metrics

import (
	"fmt"

	"github.com/kilianp07/nybus/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	// Address is where the Prometheus endpoint listens when a prometheus sink is configured.
	Address string                 `json:"address"`
	Sinks   []factory.ModuleConfig `json:"sinks"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":9100"
	}
}

// Validate checks that every sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics sink %d: type is required", i)
		}
	}
	return nil
}

// HasSink reports whether a sink of the given type is configured.
func (c Config) HasSink(typ string) bool {
	for _, s := range c.Sinks {
		if s.Type == typ {
			return true
		}
	}
	return false
}
