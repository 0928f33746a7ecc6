package main

import (
	"github.com/spf13/cobra"

	"github.com/specflow-ai/specflow/pkg/report"
	"github.com/specflow-ai/specflow/pkg/workflow"
)

// globalFlags carries the resolved persistent flag values.
type globalFlags struct {
	RulesPath   string
	ContextPath string
	Format      report.Format
	Verbose     bool
}

func parseGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	var flags globalFlags
	var err error

	if flags.RulesPath, err = cmd.Flags().GetString("rules"); err != nil {
		return flags, err
	}
	if flags.RulesPath == "" {
		flags.RulesPath = workflow.DefaultRulesPath
	}

	if flags.ContextPath, err = cmd.Flags().GetString("context"); err != nil {
		return flags, err
	}
	if flags.ContextPath == "" {
		flags.ContextPath = workflow.DefaultContextPath
	}

	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return flags, err
	}
	if flags.Format, err = report.ParseFormat(formatValue); err != nil {
		return flags, err
	}

	if flags.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return flags, err
	}
	return flags, nil
}
