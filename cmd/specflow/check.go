package main

import (
	"github.com/spf13/cobra"

	"github.com/specflow-ai/specflow/pkg/report"
	"github.com/specflow-ai/specflow/pkg/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Run the advisory project checks",
	Long: `Verify project structure, naming conventions and template frontmatter.

Checks only report; the exit code stays zero whatever they find, so agents
and hooks can run them freely without blocking forward progress.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("validation", "all", "which checks to run: all, structure, naming, frontmatter, none")
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags, err := parseGlobalFlags(cmd)
	if err != nil {
		return err
	}
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	selection, err := cmd.Flags().GetString("validation")
	if err != nil {
		return err
	}

	rep := report.New()
	switch selection {
	case "none":
	case "all", "":
		rep.Results = validate.RunAll(target)
	default:
		rep.Results = []validate.Result{validate.Run(selection, target)}
	}

	return rep.Render(cmd.OutOrStdout(), flags.Format, flags.Verbose)
}
