package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestInitScaffoldsProject(t *testing.T) {
	root := t.TempDir()
	out := execute(t, "init", root)
	require.Contains(t, out, "initialized")

	for _, path := range []string{
		filepath.Join(root, ".specflow", "memory"),
		filepath.Join(root, ".specflow", "scripts"),
		filepath.Join(root, ".specflow", "templates"),
		filepath.Join(root, "specs"),
		filepath.Join(root, ".specflow", "workflow-rules.yaml"),
		filepath.Join(root, ".specflow", "context.yaml"),
	} {
		_, err := os.Stat(path)
		require.NoError(t, err, path)
	}
}

func TestInitPreservesExistingContext(t *testing.T) {
	root := t.TempDir()
	contextPath := filepath.Join(root, ".specflow", "context.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(contextPath), 0o755))
	require.NoError(t, os.WriteFile(contextPath, []byte("spec_created: true\n"), 0o644))

	execute(t, "init", root)

	data, err := os.ReadFile(contextPath)
	require.NoError(t, err)
	require.Equal(t, "spec_created: true\n", string(data), "init must not clobber recorded progress")
}

func TestNextOutputsDecisionJSON(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.yaml")
	contextPath := filepath.Join(dir, "context.yaml")
	require.NoError(t, os.WriteFile(contextPath, []byte("spec_created: true\ncomplexity_level: high\n"), 0o644))

	out := execute(t, "next", "specify",
		"--rules", rulesPath, "--context", contextPath, "--format", "json")

	var rep struct {
		RunID    string `json:"run_id"`
		Decision struct {
			Workflow      string `json:"workflow"`
			CanProceed    bool   `json:"can_proceed"`
			ExecutionPlan []struct {
				Workflow string `json:"workflow"`
				Type     string `json:"type"`
			} `json:"execution_plan"`
		} `json:"decision"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.NotEmpty(t, rep.RunID)
	require.Equal(t, "specify", rep.Decision.Workflow)
	require.True(t, rep.Decision.CanProceed)
	require.Len(t, rep.Decision.ExecutionPlan, 3)
	require.Equal(t, "auto", rep.Decision.ExecutionPlan[0].Type)
	require.Equal(t, "conditional", rep.Decision.ExecutionPlan[1].Type)
	require.Equal(t, "next", rep.Decision.ExecutionPlan[2].Type)
}

func TestCheckAlwaysSucceeds(t *testing.T) {
	// Even a completely uninitialized directory yields exit success; the
	// findings live in the report body.
	out := execute(t, "check", t.TempDir(), "--format", "json")

	var rep struct {
		Results []struct {
			Check    string `json:"check"`
			Messages []struct {
				Level string `json:"level"`
			} `json:"messages"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Results, 3)
}

func TestCheckValidationSubset(t *testing.T) {
	out := execute(t, "check", t.TempDir(), "--validation", "structure", "--format", "json")

	var rep struct {
		Results []struct {
			Check string `json:"check"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Results, 1)
	require.Equal(t, "structure", rep.Results[0].Check)
}
