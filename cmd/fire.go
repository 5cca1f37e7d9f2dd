package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/nybus/app"
	"github.com/kilianp07/nybus/core/events"
	"github.com/kilianp07/nybus/internal/eventbus"
)

var fireFields []string

var fireCmd = &cobra.Command{
	Use:   "fire <event>",
	Short: "Broadcast one catalogue event and report its delivery",
	Args:  cobra.ExactArgs(1),
	RunE:  runFire,
}

func init() {
	fireCmd.Flags().StringArrayVar(&fireFields, "set", nil, "payload field as key=value (repeatable)")
	rootCmd.AddCommand(fireCmd)
}

func runFire(cmd *cobra.Command, args []string) error {
	typ, ok := events.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown event %q, known events: %v", args[0], events.Types())
	}
	fields, err := parseFields(fireFields)
	if err != nil {
		return err
	}
	payload, err := events.Decode(typ, fields)
	if err != nil {
		return fmt.Errorf("payload: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	reached := false
	sub := eventbus.ListenType(svc.Registry, typ, func(context.Context, any) (eventbus.Result, error) {
		reached = true
		return eventbus.Continue, nil
	})
	defer sub.Cancel()

	out := cmd.OutOrStdout()
	ev := events.NewEvent(typ)
	if a, ok := ev.(attacher); ok {
		a.Attach("cli", &hookListener{out: out})
	}
	listeners := svc.Registry.ListenerCount(typ)
	if err := svc.Registry.Fire(cmd.Context(), ev, payload); err != nil {
		return fmt.Errorf("fire %s: %w", typ, err)
	}
	if _, err := fmt.Fprintf(out, "fired %s with %+v\n", typ, payload); err != nil {
		return err
	}
	if !reached {
		_, err = fmt.Fprintf(out, "propagation stopped before the last of %d listeners\n", listeners)
		return err
	}
	_, err = fmt.Fprintf(out, "delivered to %d listeners\n", listeners)
	return err
}

type attacher interface {
	Attach(name string, l eventbus.Listener)
}

// hookListener reports that the listeners attached to the event itself ran.
type hookListener struct {
	out io.Writer
}

func (h *hookListener) Handle(ctx context.Context, _ any) (eventbus.Result, error) {
	name := ""
	if ev, ok := eventbus.EventFromContext(ctx); ok {
		name = ev.EventType().String()
	}
	_, err := fmt.Fprintf(h.out, "attached hook ran for %s\n", name)
	return eventbus.Continue, err
}

// parseFields turns key=value pairs into a payload map.
func parseFields(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", p)
		}
		fields[k] = v
	}
	return fields, nil
}
