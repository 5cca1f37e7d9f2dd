package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/nybus/config"
	"github.com/kilianp07/nybus/core/events"
	coremetrics "github.com/kilianp07/nybus/core/metrics"
	"github.com/kilianp07/nybus/infra/logger"
	"github.com/kilianp07/nybus/infra/metrics"
	"github.com/kilianp07/nybus/internal/eventbus"
)

// Service owns an event registry configured from the application settings.
type Service struct {
	Registry *eventbus.Registry

	log         logger.Logger
	recorder    coremetrics.BusRecorder
	audit       *AuditListener
	promEnabled bool
	promAddr    string

	mu   sync.Mutex
	subs []*eventbus.Subscription
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logg := logger.NewWithOptions("service", logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	recorder, err := coremetrics.NewBusRecorder(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	reg := eventbus.New(
		eventbus.WithLogger(logger.NewWithOptions("eventbus", logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})),
		eventbus.WithRecorder(recorder),
		eventbus.WithListenerTimeout(cfg.Bus.ListenerTimeout()),
	)

	svc := &Service{
		Registry:    reg,
		log:         logg,
		recorder:    recorder,
		promEnabled: cfg.Metrics.HasSink("prometheus"),
		promAddr:    cfg.Metrics.Address,
	}
	if cfg.Bus.AuditEnabled() {
		svc.audit = NewAuditListener(logg)
		for _, t := range events.Types() {
			reg.On(t, svc.audit)
		}
	}
	return svc, nil
}

// Audit returns the audit listener, or nil when auditing is disabled.
func (s *Service) Audit() *AuditListener { return s.audit }

// Run starts the metrics endpoint and the event collector, then blocks until
// the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if rec, ok := s.recorder.(coremetrics.AppEventRecorder); ok {
		subs := metrics.StartEventCollector(ctx, s.Registry, events.Types(), rec)
		s.mu.Lock()
		s.subs = append(s.subs, subs...)
		s.mu.Unlock()
	}
	if s.promEnabled {
		g.Go(func() error {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				return fmt.Errorf("prom server: %w", err)
			}
			return nil
		})
	}
	s.log.Infof("event bus ready, %d event types wired", len(s.Registry.Types()))
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})
	return g.Wait()
}

// Close detaches every listener installed by the service.
func (s *Service) Close() error {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Cancel()
	}
	if s.audit != nil {
		s.Registry.RemoveListener(s.audit)
	}
	return nil
}
