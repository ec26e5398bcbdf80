// Command mediatorctl is a small CLI for exercising the mediator outside of
// a real planner/extractor pairing: it runs the seed scenarios against the
// in-process banking demo tools (weather results are scripted) and reports
// pass/fail.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "v0.0.0"

func main() {
	root := buildRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mediatorctl",
		Short:   "Run the dual-LLM mediator demo scenarios",
		Version: version,
	}
	cmd.AddCommand(buildDemoCmd(), buildSessionCmd())
	return cmd
}
