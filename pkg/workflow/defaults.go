package workflow

// DefaultRules returns the seed registry for the standard spec-driven flow:
// specify -> clarify -> plan -> tasks -> analyze -> implement, with a
// complexity detection step auto-queued after specify and a research step
// conditionally queued for medium-or-higher complexity. The seed is written
// once on first use; the user owns the file afterwards.
func DefaultRules() Rules {
	return Rules{
		"specify": {
			PostConditions: []string{"spec_created"},
			AutoTrigger:    []string{"detect-complexity"},
			Conditional: &ConditionalTrigger{
				When:   AtLeast("complexity_level", TierMedium),
				Target: "research-tech",
			},
			Next: "clarify",
		},
		"detect-complexity": {
			PreConditions:  []string{"spec_created"},
			PostConditions: []string{"complexity_analyzed", "complexity_level"},
		},
		"research-tech": {
			PreConditions:  []string{"complexity_analyzed"},
			PostConditions: []string{"research_complete"},
			MaxIterations:  3,
		},
		"clarify": {
			PreConditions:  []string{"spec_created"},
			PostConditions: []string{"spec_clarified"},
			Next:           "plan",
		},
		"plan": {
			PreConditions:  []string{"spec_created", "complexity_analyzed"},
			PostConditions: []string{"plan_created"},
			Next:           "tasks",
		},
		"tasks": {
			PreConditions:  []string{"plan_created"},
			PostConditions: []string{"tasks_created"},
			Next:           "analyze",
		},
		"analyze": {
			PreConditions:  []string{"tasks_created"},
			PostConditions: []string{"analysis_complete"},
			Gatekeeper:     true,
			Next:           "implement",
		},
		"implement": {
			PreConditions:  []string{"tasks_created", "analysis_complete"},
			PostConditions: []string{"implementation_complete"},
		},
	}
}
