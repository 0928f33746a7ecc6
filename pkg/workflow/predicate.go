package workflow

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier is a totally ordered enumeration used by threshold predicates:
// low < medium < high. Anything outside the set is incomparable.
type Tier int

const (
	TierUnknown Tier = iota
	TierLow
	TierMedium
	TierHigh
)

// ParseTier maps a tier name to its ordinal. Unknown names are incomparable.
func ParseTier(s string) (Tier, bool) {
	switch strings.TrimSpace(s) {
	case "low":
		return TierLow, true
	case "medium":
		return TierMedium, true
	case "high":
		return TierHigh, true
	default:
		return TierUnknown, false
	}
}

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// predicateKind enumerates the closed predicate vocabulary.
type predicateKind int

const (
	predicateInvalid predicateKind = iota
	predicateAtLeast
	predicateBoolEquals
)

// Predicate is a single parsed condition over the context. The vocabulary is
// deliberately closed: an ordinal threshold ("field >= medium") or a boolean
// equality ("field == true"). Expressions are parsed once, when rules are
// loaded; anything outside the vocabulary becomes an invalid predicate that
// always evaluates false. Predicates never raise during evaluation.
type Predicate struct {
	kind  predicateKind
	field string
	tier  Tier
	want  bool
	raw   string
}

// AtLeast builds an ordinal threshold predicate.
func AtLeast(field string, tier Tier) Predicate {
	return Predicate{
		kind:  predicateAtLeast,
		field: field,
		tier:  tier,
		raw:   fmt.Sprintf("%s >= %s", field, tier),
	}
}

// BoolEquals builds a boolean equality predicate.
func BoolEquals(field string, want bool) Predicate {
	return Predicate{
		kind:  predicateBoolEquals,
		field: field,
		want:  want,
		raw:   fmt.Sprintf("%s == %t", field, want),
	}
}

// ParsePredicate parses an expression into the closed vocabulary.
// Supported forms: "field >= low|medium|high" and "field == true|false".
func ParsePredicate(expr string) (Predicate, error) {
	raw := strings.TrimSpace(expr)
	if raw == "" {
		return Predicate{}, errors.New("predicate expression is empty")
	}

	if field, rest, ok := splitOperator(raw, ">="); ok {
		tier, comparable := ParseTier(rest)
		if !comparable {
			return Predicate{}, fmt.Errorf("predicate %q: threshold %q is not a tier (low, medium, high)", raw, rest)
		}
		p := AtLeast(field, tier)
		p.raw = raw
		return p, nil
	}

	if field, rest, ok := splitOperator(raw, "=="); ok {
		switch rest {
		case "true", "false":
			p := BoolEquals(field, rest == "true")
			p.raw = raw
			return p, nil
		default:
			return Predicate{}, fmt.Errorf("predicate %q: %q is not a boolean literal", raw, rest)
		}
	}

	return Predicate{}, fmt.Errorf("predicate %q: no supported operator (>=, ==)", raw)
}

func splitOperator(expr, op string) (field, rest string, ok bool) {
	idx := strings.Index(expr, op)
	if idx < 0 {
		return "", "", false
	}
	field = strings.TrimSpace(expr[:idx])
	rest = strings.TrimSpace(expr[idx+len(op):])
	if field == "" || rest == "" {
		return "", "", false
	}
	return field, rest, true
}

// Eval evaluates the predicate against the context. Invalid predicates and
// incomparable values are false, never errors.
func (p Predicate) Eval(ctx Context) bool {
	switch p.kind {
	case predicateAtLeast:
		val, ok := ctx[p.field].(string)
		if !ok {
			return false
		}
		tier, comparable := ParseTier(val)
		if !comparable {
			return false
		}
		return tier >= p.tier
	case predicateBoolEquals:
		switch v := ctx[p.field].(type) {
		case bool:
			return v == p.want
		case string:
			return (v == "true") == p.want && (v == "true" || v == "false")
		default:
			return false
		}
	default:
		return false
	}
}

// Valid reports whether the predicate belongs to the supported vocabulary.
func (p Predicate) Valid() bool { return p.kind != predicateInvalid }

func (p Predicate) String() string { return p.raw }

// UnmarshalYAML parses the expression form used in rule files. A malformed
// expression is absorbed into an always-false predicate with an advisory
// log line so a bad rule never blocks registry loading.
func (p *Predicate) UnmarshalYAML(node *yaml.Node) error {
	var expr string
	if err := node.Decode(&expr); err != nil {
		return fmt.Errorf("decode predicate: %w", err)
	}
	parsed, err := ParsePredicate(expr)
	if err != nil {
		log.Printf("workflow: %v (predicate will evaluate false)", err)
		*p = Predicate{raw: strings.TrimSpace(expr)}
		return nil
	}
	*p = parsed
	return nil
}

// MarshalYAML writes the predicate back in its expression form.
func (p Predicate) MarshalYAML() (any, error) {
	return p.raw, nil
}

// MarshalJSON mirrors the YAML expression form for report output.
func (p Predicate) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.raw)), nil
}
