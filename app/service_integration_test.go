package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/nybus/config"
	"github.com/kilianp07/nybus/core/events"
	"github.com/kilianp07/nybus/core/factory"
	"github.com/kilianp07/nybus/internal/eventbus"
)

// waitForMetric polls a Prometheus metrics endpoint until substr appears.
func waitForMetric(ctx context.Context, metricsURL, substr string) error {
	for {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, metricsURL, nil)
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			body, rerr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if rerr != nil {
				return fmt.Errorf("read metrics body: %w", rerr)
			}
			if strings.Contains(string(body), substr) {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("metric %q not found: %w", substr, ctx.Err())
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServiceExposesBusMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Address = freeAddr(t)
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "prometheus"}}
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	require.Eventually(t, func() bool {
		return svc.Registry.ListenerCount(events.LocaleChanged.EventType()) == 2
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, eventbus.Publish(ctx, svc.Registry, events.LocaleChanged, events.LocalePayload{From: "en", To: "de"}))

	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()
	url := "http://" + cfg.Metrics.Address + "/metrics"
	require.NoError(t, waitForMetric(waitCtx, url, `eventbus_broadcasts_total{event_type="locale.changed",outcome="delivered"}`))
	require.NoError(t, waitForMetric(waitCtx, url, `app_events_total{event_type="locale.changed"}`))

	cancel()
	require.NoError(t, <-done)
}
