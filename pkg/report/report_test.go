package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specflow-ai/specflow/pkg/validate"
	"github.com/specflow-ai/specflow/pkg/workflow"
)

func sampleDecision() *workflow.Decision {
	d := workflow.Decide("specify", workflow.Rules{
		"specify": {
			PreConditions: []string{"constitution_accepted"},
			AutoTrigger:   []string{"detect-complexity"},
			Next:          "clarify",
		},
	}, workflow.Context{})
	return &d
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{
		"":       FormatText,
		"text":   FormatText,
		"JSON":   FormatJSON,
		"yaml":   FormatYAML,
		" Yaml ": FormatYAML,
	} {
		got, err := ParseFormat(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestNewAssignsRunID(t *testing.T) {
	a, b := New(), New()
	require.NotEmpty(t, a.RunID)
	require.NotEqual(t, a.RunID, b.RunID)
	require.False(t, a.GeneratedAt.IsZero())
}

func TestRenderJSONRoundTrips(t *testing.T) {
	r := New()
	r.Decision = sampleDecision()
	r.Results = validateResults()

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormatJSON, false))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, r.RunID, decoded["run_id"])

	decision := decoded["decision"].(map[string]any)
	require.Equal(t, false, decision["can_proceed"])
	require.Equal(t, []any{"constitution_accepted"}, decision["failed_conditions"])
	plan := decision["execution_plan"].([]any)
	require.Len(t, plan, 2)
	first := plan[0].(map[string]any)
	require.Equal(t, "detect-complexity", first["workflow"])
	require.Equal(t, "auto", first["type"])
}

func TestRenderYAML(t *testing.T) {
	r := New()
	r.Results = validateResults()

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormatYAML, false))

	var decoded struct {
		RunID   string            `yaml:"run_id"`
		Results []validate.Result `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, r.RunID, decoded.RunID)
	require.Len(t, decoded.Results, 1)
	require.Equal(t, "structure", decoded.Results[0].Check)
}

func TestRenderTextDecision(t *testing.T) {
	r := New()
	r.Decision = sampleDecision()

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormatText, false))
	out := buf.String()

	require.Contains(t, out, "specify")
	require.Contains(t, out, "blocked")
	require.Contains(t, out, "constitution_accepted")
	require.Contains(t, out, "detect-complexity")
	require.Contains(t, out, "clarify")
}

func TestRenderTextVerbositySuppressesInfo(t *testing.T) {
	r := New()
	r.Results = validateResults()

	var quiet, loud bytes.Buffer
	require.NoError(t, r.Render(&quiet, FormatText, false))
	require.NoError(t, r.Render(&loud, FormatText, true))

	require.NotContains(t, quiet.String(), "all good")
	require.Contains(t, loud.String(), "all good")
	// Warnings always show.
	require.Contains(t, quiet.String(), "something odd")
	require.Greater(t, len(loud.String()), len(quiet.String()))
}

func validateResults() []validate.Result {
	return []validate.Result{{
		Check:  "structure",
		Target: ".",
		Messages: []validate.Message{
			{Level: validate.LevelInfo, Message: "all good"},
			{Level: validate.LevelWarn, Message: "something odd"},
		},
	}}
}

func TestRenderTextGatekeeper(t *testing.T) {
	d := workflow.Decide("analyze", workflow.Rules{"analyze": {Gatekeeper: true}}, workflow.Context{})
	r := New()
	r.Decision = &d

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormatText, false))
	require.True(t, strings.Contains(buf.String(), "gatekeeper"))
}
