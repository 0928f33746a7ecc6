package workflow

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Context is the persisted key/value snapshot of workflow-progress flags.
// Values are boolean flags, ordinal tier strings, or counters. It is the
// single source of truth for predicate evaluation and is mutated only by the
// caller, after a workflow actually executed.
type Context map[string]any

// LoadContext reads a YAML context file. A missing or unreadable file
// resolves to an empty Context: absent state is an absence of truth, so
// every condition looked up against it fails closed.
func LoadContext(path string) Context {
	data, err := os.ReadFile(path)
	if err != nil {
		return Context{}
	}
	var ctx Context
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		log.Printf("workflow: context %s is not valid YAML, treating as empty: %v", path, err)
		return Context{}
	}
	if ctx == nil {
		ctx = Context{}
	}
	return ctx
}

// Holds reports whether a condition evaluates true. Only boolean true and
// the string "true" count; anything else, including absence, is false.
// Context files written by shell tooling carry string scalars, hence the
// string form.
func (c Context) Holds(name string) bool {
	switch v := c[name].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// Clone copies the context so a returned Decision cannot alias writes the
// caller makes after evaluation.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
