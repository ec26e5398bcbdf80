package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corvidlabs/dualmediator/internal/mediator"
	"github.com/corvidlabs/dualmediator/internal/metrics"
	"github.com/corvidlabs/dualmediator/internal/session"
)

// buildSessionCmd creates the "session" command: it registers a mediated
// session through a SessionRegistry with a real Prometheus-backed
// MetricsCollector installed, mediates one tool call through it, and
// reports the session's final state.
func buildSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Register a mediated session and report its state and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionDemo(cmd.Context())
		},
	}
}

func runSessionDemo(ctx context.Context) error {
	collector, registry := metrics.NewCollector()
	metricFamilies, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	fmt.Printf("registered %d metric families with the session's collector\n", len(metricFamilies))

	sessions := session.NewRegistry(mediator.WithMetrics(collector))

	const sessionID = "cli-session"
	if err := sessions.Register(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to register session: %w", err)
	}
	defer sessions.Close(ctx, sessionID)

	m := sessions.Mediator(sessionID)
	toolArgs := map[string]interface{}{"city": "Paris"}
	if err := m.BeforeTool(ctx, "get_weather", toolArgs); err != nil {
		return fmt.Errorf("BeforeTool failed: %w", err)
	}
	sanitized, err := m.AfterTool(ctx, "get_weather", toolArgs,
		map[string]interface{}{"temperature": 18.0, "condition": "cloudy"})
	if err != nil {
		return fmt.Errorf("AfterTool failed: %w", err)
	}

	if err := sessions.Touch(ctx, sessionID, m.Registry().Size()); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	info, err := sessions.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read session info: %w", err)
	}

	fmt.Printf("session %s: status=%s keys=%d\n", info.ID, info.Status, info.KeyCount)
	fmt.Printf("sanitized get_weather result: %v\n", sanitized)
	return nil
}
