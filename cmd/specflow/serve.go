package main

import (
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/specflow-ai/specflow/pkg/mcpserver"
	"github.com/specflow-ai/specflow/pkg/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the orchestrator and validators over MCP (stdio)",
	Long: `Expose the workflow_decision and validate_project tools to agents over
the Model Context Protocol. Rules and context files are hot-reloaded while
serving, so decisions always reflect the latest recorded progress.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags, err := parseGlobalFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	shutdown, err := telemetry.Setup(ctx, "specflow")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("serve: telemetry shutdown: %v", err)
		}
	}()

	server := mcpserver.New(mcpserver.Options{
		RulesPath:   flags.RulesPath,
		ContextPath: flags.ContextPath,
		Watch:       true,
	})
	return server.Run(ctx, &mcp.StdioTransport{})
}
