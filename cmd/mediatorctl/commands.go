package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corvidlabs/dualmediator/internal/demo"
)

// scenario pairs a selectable name with a runner that needs nothing but a
// context, so the "scenario" subcommand can list and dispatch by name
// without the caller knowing which seed scenarios touch the demo bank.
type scenario struct {
	name string
	run  func(ctx context.Context) demo.ScenarioResult
}

func scenarios() []scenario {
	return []scenario{
		{"allowlisted-transfer", func(ctx context.Context) demo.ScenarioResult {
			return demo.RunAllowlistedTransferSucceeds(ctx, demo.NewBank())
		}},
		{"non-allowlisted-transfer", func(ctx context.Context) demo.ScenarioResult {
			return demo.RunNonAllowlistedTransferBlocked(ctx, demo.NewBank())
		}},
		{"amount-limit-transfer", func(ctx context.Context) demo.ScenarioResult {
			return demo.RunAmountLimitTransferBlocked(ctx, demo.NewBank())
		}},
		{"qllm-schema-mismatch", demo.RunQLLMSchemaMismatchRejected},
		{"injection-ignored", func(ctx context.Context) demo.ScenarioResult {
			return demo.RunInjectionIgnored(ctx, demo.NewBank())
		}},
		{"final-resolution", demo.RunFinalResolution},
	}
}

// buildDemoCmd creates the "demo" command group: "demo run" executes every
// seed scenario, "demo scenario <name>" executes just one.
func buildDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Exercise the mediator against the seed scenarios",
	}
	cmd.AddCommand(buildDemoRunCmd(), buildDemoScenarioCmd())
	return cmd
}

func buildDemoRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every seed scenario and report pass/fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := demo.RunAll(cmd.Context())
			failed := printResults(results)
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
			}
			return nil
		},
	}
}

func buildDemoScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario <name>",
		Short: "Run a single named seed scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range scenarios() {
				if s.name == args[0] {
					result := s.run(cmd.Context())
					printResults([]demo.ScenarioResult{result})
					if result.Err != nil || !result.Passed {
						return fmt.Errorf("scenario %q did not pass", s.name)
					}
					return nil
				}
			}
			return fmt.Errorf("unknown scenario %q (see %q for the list)", args[0], "mediatorctl demo scenario --help")
		},
	}
	cmd.Long = "Run a single named seed scenario. Available names:\n" + scenarioNames()
	return cmd
}

func scenarioNames() string {
	var out string
	for _, s := range scenarios() {
		out += "  " + s.name + "\n"
	}
	return out
}

// printResults prints one line per result and returns the number that
// failed, either by erroring or by not passing.
func printResults(results []demo.ScenarioResult) int {
	failed := 0
	for _, r := range results {
		status := "PASS"
		if r.Err != nil || !r.Passed {
			status = "FAIL"
			failed++
		}
		detail := r.Detail
		if r.Err != nil {
			detail = r.Err.Error()
		}
		fmt.Printf("[%s] %-30s %s\n", status, r.Name, detail)
	}
	return failed
}
