package eventbus

var defaultRegistry = New()

// Default returns the process-wide registry used when no registry is injected.
func Default() *Registry { return defaultRegistry }
