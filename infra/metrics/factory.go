package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/nybus/core/factory"
	coremetrics "github.com/kilianp07/nybus/core/metrics"
	"github.com/kilianp07/nybus/infra/logger"
)

// init registers built-in bus recorders.
func init() {
	_ = coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.BusRecorder, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterSink("log", func(conf map[string]any) (coremetrics.BusRecorder, error) {
		var c struct {
			Component string `json:"component"`
			Level     string `json:"level"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Component == "" {
			c.Component = "eventbus-metrics"
		}
		if c.Level == "" {
			c.Level = "debug"
		}
		return NewLogSink(logger.NewWithOptions(c.Component, logger.Options{Level: c.Level})), nil
	})
}
