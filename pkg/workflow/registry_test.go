package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrBootstrapSeedsMissingRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".specflow", "workflow-rules.yaml")

	rules := LoadOrBootstrap(path)
	require.Equal(t, DefaultRules(), rules)

	// First use must have persisted the seed.
	_, err := os.Stat(path)
	require.NoError(t, err, "bootstrap should write the registry once")

	// A second load reads the file rather than re-seeding.
	again := LoadOrBootstrap(path)
	require.Len(t, again, len(DefaultRules()))
	require.Contains(t, again, "specify")
	require.Equal(t, "clarify", again.Get("specify").Next)
}

func TestLoadOrBootstrapRoundTripsPredicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	_ = LoadOrBootstrap(path)

	rules := LoadOrBootstrap(path)
	specify := rules.Get("specify")
	require.NotNil(t, specify.Conditional)
	require.True(t, specify.Conditional.When.Valid())
	require.True(t, specify.Conditional.When.Eval(Context{"complexity_level": "high"}))
	require.False(t, specify.Conditional.When.Eval(Context{"complexity_level": "low"}))
	require.Equal(t, "research-tech", specify.Conditional.Target)
}

func TestLoadOrBootstrapCorruptFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workflows: [broken"), 0o644))

	rules := LoadOrBootstrap(path)
	require.Equal(t, DefaultRules(), rules)

	// The corrupt file is left alone for the user to fix.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "workflows: [broken", string(data))
}

func TestLoadOrBootstrapHonoursEmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, WriteRules(path, Rules{}))

	rules := LoadOrBootstrap(path)
	require.Empty(t, rules, "a deliberately emptied registry must stay empty")

	d := Decide("foo", rules, Context{})
	require.True(t, d.CanProceed)
	require.Empty(t, d.ExecutionPlan)
}

func TestRulesGetUnknownName(t *testing.T) {
	rules := Rules{"known": {Next: "other"}}
	require.Equal(t, EmptyRule, rules.Get("unknown"))
	require.Equal(t, "other", rules.Get("known").Next)
}

func TestWriteRulesCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "rules.yaml")
	require.NoError(t, WriteRules(path, DefaultRules()))

	rules := LoadOrBootstrap(path)
	require.Equal(t, []string{"plan_created"}, rules.Get("tasks").PreConditions)
	require.True(t, rules.Get("analyze").Gatekeeper)
	require.Equal(t, 3, rules.Get("research-tech").MaxIterations)
}
