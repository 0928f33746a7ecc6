// Package validate implements the advisory project checks: structure, naming
// and frontmatter. Validators only report leveled messages; they never fail
// the caller and never affect control flow. Findings are not errors.
package validate

import (
	"fmt"
	"sort"
)

// Level grades an advisory message.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Message is one advisory finding.
type Message struct {
	Level   Level  `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
}

// Result groups the findings of one check against one target.
type Result struct {
	Check    string    `json:"check" yaml:"check"`
	Target   string    `json:"target" yaml:"target"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// Counts tallies messages per level.
func (r Result) Counts() (info, warn, errs int) {
	for _, m := range r.Messages {
		switch m.Level {
		case LevelWarn:
			warn++
		case LevelError:
			errs++
		default:
			info++
		}
	}
	return info, warn, errs
}

// CheckFunc inspects a target path and reports findings.
type CheckFunc func(target string) []Message

var checks = map[string]CheckFunc{
	"structure":   CheckStructure,
	"naming":      CheckNaming,
	"frontmatter": CheckFrontmatter,
}

// Names lists the available checks in stable order.
func Names() []string {
	out := make([]string, 0, len(checks))
	for name := range checks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Run executes one named check. An unknown name yields an advisory error
// message rather than a failure, matching the never-block convention.
func Run(name, target string) Result {
	fn, ok := checks[name]
	if !ok {
		return Result{
			Check:  name,
			Target: target,
			Messages: []Message{{
				Level:   LevelError,
				Message: fmt.Sprintf("unknown check %q (available: %v)", name, Names()),
			}},
		}
	}
	return Result{Check: name, Target: target, Messages: fn(target)}
}

// RunAll executes every registered check against the target.
func RunAll(target string) []Result {
	results := make([]Result, 0, len(checks))
	for _, name := range Names() {
		results = append(results, Run(name, target))
	}
	return results
}
