// Package report renders orchestration decisions and validation results for
// humans (styled text) and machines (JSON, YAML). Rendering never alters the
// underlying data; each report carries a run ID for audit correlation.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/specflow-ai/specflow/pkg/validate"
	"github.com/specflow-ai/specflow/pkg/workflow"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (text, json, yaml)", s)
	}
}

// Report bundles one run's outputs.
type Report struct {
	RunID       string             `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	Decision    *workflow.Decision `json:"decision,omitempty" yaml:"decision,omitempty"`
	Results     []validate.Result  `json:"results,omitempty" yaml:"results,omitempty"`
}

// New allocates a report with a fresh run ID.
func New() *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleBlocked = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleHeader  = lipgloss.NewStyle().Bold(true)
)

// Render writes the report in the requested format.
func (r *Report) Render(w io.Writer, format Format, verbose bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	default:
		return r.renderText(w, verbose)
	}
}

func (r *Report) renderText(w io.Writer, verbose bool) error {
	if r.Decision != nil {
		if err := renderDecision(w, r.Decision); err != nil {
			return err
		}
	}
	for _, res := range r.Results {
		if err := renderResult(w, res, verbose); err != nil {
			return err
		}
	}
	return nil
}

func renderDecision(w io.Writer, d *workflow.Decision) error {
	status := styleOK.Render("can proceed")
	if !d.CanProceed {
		status = styleBlocked.Render("blocked")
	}
	if _, err := fmt.Fprintf(w, "%s %s", styleHeader.Render(d.Workflow), status); err != nil {
		return err
	}
	if d.IsGatekeeper {
		if _, err := fmt.Fprintf(w, " %s", styleWarn.Render("[gatekeeper]")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for _, cond := range d.FailedConditions {
		if _, err := fmt.Fprintf(w, "  %s %s\n", styleError.Render("missing"), cond); err != nil {
			return err
		}
	}
	for _, entry := range d.ExecutionPlan {
		if _, err := fmt.Fprintf(w, "  %s %s\n", styleInfo.Render(string(entry.Trigger)), entry.Workflow); err != nil {
			return err
		}
	}
	return nil
}

func renderResult(w io.Writer, res validate.Result, verbose bool) error {
	info, warn, errs := res.Counts()
	if _, err := fmt.Fprintf(w, "%s: %d error(s), %d warning(s), %d info\n",
		styleHeader.Render(res.Check), errs, warn, info); err != nil {
		return err
	}
	for _, msg := range res.Messages {
		if msg.Level == validate.LevelInfo && !verbose {
			continue
		}
		line := fmt.Sprintf("  [%s] %s", msg.Level, msg.Message)
		if msg.File != "" {
			line += " (" + msg.File + ")"
		}
		switch msg.Level {
		case validate.LevelError:
			line = styleError.Render(line)
		case validate.LevelWarn:
			line = styleWarn.Render(line)
		default:
			line = styleInfo.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
