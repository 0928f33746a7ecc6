package workflow

// Decide evaluates one workflow request against the registry and context and
// returns the resulting Decision. It is a pure function: identical inputs
// yield an identical Decision, nothing executes, and neither input is
// mutated. Every failure mode degrades to a safe default — permissive for
// unknown workflows, closed for missing conditions and invalid predicates —
// so the caller is never interrupted.
func Decide(name string, rules Rules, ctx Context) Decision {
	rule := rules.Get(name)

	failed := make([]string, 0, len(rule.PreConditions))
	for _, cond := range rule.PreConditions {
		if !ctx.Holds(cond) {
			failed = append(failed, cond)
		}
	}

	// Plan order is fixed: auto entries in declared order, then the
	// conditional entry, then the successor. Auto triggers are queued even
	// when the requested step itself is not eligible.
	plan := make([]PlanEntry, 0, len(rule.AutoTrigger)+2)
	for _, auto := range rule.AutoTrigger {
		plan = append(plan, PlanEntry{Workflow: auto, Trigger: TriggerAuto})
	}
	if rule.Conditional != nil && rule.Conditional.When.Eval(ctx) {
		plan = append(plan, PlanEntry{Workflow: rule.Conditional.Target, Trigger: TriggerConditional})
	}
	if rule.Next != "" {
		plan = append(plan, PlanEntry{Workflow: rule.Next, Trigger: TriggerNext})
	}

	return Decision{
		Workflow:         name,
		CanProceed:       len(failed) == 0,
		FailedConditions: failed,
		ExecutionPlan:    plan,
		IsGatekeeper:     rule.Gatekeeper,
		Context:          ctx.Clone(),
	}
}
