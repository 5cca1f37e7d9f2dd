package metrics

import "github.com/kilianp07/nybus/core/factory"

var sinkRegistry = factory.NewRegistry[BusRecorder]()

// RegisterSink adds a bus recorder factory identified by name.
func RegisterSink(name string, f factory.Factory[BusRecorder]) error {
	return sinkRegistry.Register(name, f)
}

// SinkTypes lists the registered sink types.
func SinkTypes() []string { return sinkRegistry.Names() }

// NewBusRecorder creates a BusRecorder from the provided configuration.
func NewBusRecorder(cfgs []factory.ModuleConfig) (BusRecorder, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]BusRecorder, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}

func init() {
	_ = RegisterSink("nop", func(map[string]any) (BusRecorder, error) { return NopSink{}, nil })
}
