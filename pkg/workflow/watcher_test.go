package workflow

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnContextChange(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "workflow-rules.yaml")
	contextPath := filepath.Join(dir, "context.yaml")
	require.NoError(t, os.WriteFile(contextPath, []byte("spec_created: false\n"), 0o644))

	var mu sync.Mutex
	var latest Context
	w, err := NewWatcher(rulesPath, contextPath,
		WithDebounce(20*time.Millisecond),
		OnChange(func(_ Rules, ctx Context) {
			mu.Lock()
			latest = ctx
			mu.Unlock()
		}),
	)
	require.NoError(t, err)

	rules, ctx, err := w.Start()
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	require.Equal(t, DefaultRules(), rules, "missing registry bootstraps on start")
	require.False(t, ctx.Holds("spec_created"))

	require.NoError(t, os.WriteFile(contextPath, []byte("spec_created: true\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest != nil && latest.Holds("spec_created")
	}, 2*time.Second, 10*time.Millisecond, "watcher did not observe context write")
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "workflow-rules.yaml")
	contextPath := filepath.Join(dir, "context.yaml")
	require.NoError(t, WriteRules(rulesPath, Rules{}))

	var calls int
	var mu sync.Mutex
	w, err := NewWatcher(rulesPath, contextPath,
		WithDebounce(20*time.Millisecond),
		OnChange(func(Rules, Context) {
			mu.Lock()
			calls++
			mu.Unlock()
		}),
	)
	require.NoError(t, err)

	_, _, err = w.Start()
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("noise"), 0o644))
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 1, calls, "only the initial load should have fired")
}

func TestWatcherRequiresPaths(t *testing.T) {
	_, err := NewWatcher("", "context.yaml")
	require.Error(t, err)
	_, err = NewWatcher("rules.yaml", "")
	require.Error(t, err)
}
