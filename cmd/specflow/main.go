// Command specflow is the spec-driven development helper CLI: advisory
// project checks, workflow orchestration decisions, project scaffolding and
// an MCP server for agent integration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "specflow",
	Short: "Spec-driven development helper for AI agents",
	Long: `specflow keeps an AI agent on the rails of a spec-driven process.

Every command is advisory: checks report findings without failing, and
workflow decisions tell the agent what should run next without enforcing
anything. The agent executes steps and records progress itself.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("rules", "", "path to the workflow rule registry (default .specflow/workflow-rules.yaml)")
	rootCmd.PersistentFlags().String("context", "", "path to the workflow context file (default .specflow/context.yaml)")
	rootCmd.PersistentFlags().String("format", "text", "output format: text, json, yaml")
	rootCmd.PersistentFlags().Bool("verbose", false, "show informational messages")

	rootCmd.AddCommand(nextCmd, checkCmd, initCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
