package main

import (
	"github.com/spf13/cobra"

	"github.com/specflow-ai/specflow/pkg/report"
	"github.com/specflow-ai/specflow/pkg/workflow"
)

var nextCmd = &cobra.Command{
	Use:   "next <workflow>",
	Short: "Evaluate a workflow step and print the orchestration decision",
	Long: `Evaluate whether the named workflow step may run, which auxiliary steps
run alongside it, and what the canonical successor is.

The decision is computed from the rule registry and the persisted context
and is purely advisory: specflow never executes steps and never blocks. A
blocked step is reported through can_proceed and failed_conditions, not
through the exit code.`,
	Args: cobra.ExactArgs(1),
	RunE: runNext,
}

func runNext(cmd *cobra.Command, args []string) error {
	flags, err := parseGlobalFlags(cmd)
	if err != nil {
		return err
	}

	rules := workflow.LoadOrBootstrap(flags.RulesPath)
	ctx := workflow.LoadContext(flags.ContextPath)
	decision := workflow.Decide(args[0], rules, ctx)

	rep := report.New()
	rep.Decision = &decision
	return rep.Render(cmd.OutOrStdout(), flags.Format, flags.Verbose)
}
