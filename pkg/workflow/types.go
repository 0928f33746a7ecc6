// Package workflow implements the advisory orchestration core: a persisted
// context of progress flags, a rule registry keyed by workflow name, and a
// pure decision function that tells the calling agent whether a step may run
// and what should run next. Nothing in this package executes workflows; the
// caller runs steps and writes completion flags back to the context itself.
package workflow

// Default locations consulted when the caller does not override the paths.
const (
	DefaultRulesPath   = ".specflow/workflow-rules.yaml"
	DefaultContextPath = ".specflow/context.yaml"
)

// TriggerType tags how an execution-plan entry was produced.
type TriggerType string

const (
	// TriggerAuto marks steps unconditionally queued alongside the request.
	TriggerAuto TriggerType = "auto"
	// TriggerConditional marks the single step gated by a context predicate.
	TriggerConditional TriggerType = "conditional"
	// TriggerNext marks the canonical successor step.
	TriggerNext TriggerType = "next"
)

// PlanEntry is one step of an ordered execution plan.
type PlanEntry struct {
	Workflow string      `json:"workflow" yaml:"workflow"`
	Trigger  TriggerType `json:"type" yaml:"type"`
}

// ConditionalTrigger queues a single follow-on workflow when its predicate
// holds against the current context.
type ConditionalTrigger struct {
	When   Predicate `json:"when" yaml:"when"`
	Target string    `json:"target" yaml:"target"`
}

// Rule describes eligibility and chaining behaviour for one workflow.
//
// The zero value is the canonical empty rule: no conditions, no triggers,
// no successor. A workflow name with no registry entry resolves to it, so
// unknown workflows are permissive rather than an error.
type Rule struct {
	// PreConditions must all hold true in the context for eligibility.
	// The set is AND-only; there is no OR or negation.
	PreConditions []string `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	// PostConditions are the flags the workflow is expected to set after it
	// actually runs. Recorded here for the caller; never enforced.
	PostConditions []string `json:"postconditions,omitempty" yaml:"postconditions,omitempty"`
	// AutoTrigger lists workflows unconditionally appended to the plan,
	// in declared order, regardless of eligibility.
	AutoTrigger []string `json:"auto,omitempty" yaml:"auto,omitempty"`
	// Conditional optionally queues one follow-on workflow behind a predicate.
	Conditional *ConditionalTrigger `json:"conditional,omitempty" yaml:"conditional,omitempty"`
	// Next names the canonical successor workflow, if any.
	Next string `json:"next,omitempty" yaml:"next,omitempty"`
	// MaxIterations bounds cyclical research-style workflows. Informational.
	MaxIterations int `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`
	// Gatekeeper marks a review checkpoint. Echoed in decisions, not enforced.
	Gatekeeper bool `json:"gatekeeper,omitempty" yaml:"gatekeeper,omitempty"`
}

// EmptyRule is the canonical rule for unmatched workflow names.
var EmptyRule = Rule{}

// Decision is the pure output of one orchestration evaluation. It is never
// persisted here; the caller decides what to run and records the outcome.
type Decision struct {
	Workflow         string      `json:"workflow" yaml:"workflow"`
	CanProceed       bool        `json:"can_proceed" yaml:"can_proceed"`
	FailedConditions []string    `json:"failed_conditions" yaml:"failed_conditions"`
	ExecutionPlan    []PlanEntry `json:"execution_plan" yaml:"execution_plan"`
	IsGatekeeper     bool        `json:"is_gatekeeper" yaml:"is_gatekeeper"`
	// Context echoes the snapshot the decision was computed from, for
	// downstream auditability.
	Context Context `json:"context" yaml:"context"`
}
