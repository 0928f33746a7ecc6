package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/specflow-ai/specflow/pkg/workflow"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Scaffold the .specflow project layout and seed the rule registry",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	for _, dir := range []string{
		filepath.Join(root, ".specflow", "memory"),
		filepath.Join(root, ".specflow", "scripts"),
		filepath.Join(root, ".specflow", "templates"),
		filepath.Join(root, "specs"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	// First read seeds the registry with the default spec-driven flow.
	rulesPath := filepath.Join(root, ".specflow", "workflow-rules.yaml")
	_ = workflow.LoadOrBootstrap(rulesPath)

	// An empty context file marks the starting state explicitly. The file is
	// owned by the executing agent afterwards; init never overwrites it.
	contextPath := filepath.Join(root, ".specflow", "context.yaml")
	if _, err := os.Stat(contextPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(contextPath, []byte("{}\n"), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", contextPath, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", filepath.Join(root, ".specflow"))
	return nil
}
