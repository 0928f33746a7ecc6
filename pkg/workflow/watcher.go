package workflow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher hot-reloads the rules and context files for long-lived consumers
// such as the MCP server. One-shot callers should read the files directly.
type Watcher struct {
	rulesPath   string
	contextPath string
	debounce    time.Duration

	fsw *fsnotify.Watcher

	stop chan struct{}
	done chan struct{}

	mu      sync.Mutex
	watched map[string]struct{}

	onChange func(Rules, Context)
	onError  func(error)
}

// WatcherOption configures the hot reloader.
type WatcherOption func(*Watcher)

// WithDebounce overrides the default debounce window.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// OnChange registers a callback fired after each reload.
func OnChange(fn func(Rules, Context)) WatcherOption {
	return func(w *Watcher) { w.onChange = fn }
}

// OnError registers a callback for watch failures.
func OnError(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

// NewWatcher wires a file watcher around the rules and context paths.
func NewWatcher(rulesPath, contextPath string, opts ...WatcherOption) (*Watcher, error) {
	if rulesPath == "" || contextPath == "" {
		return nil, errors.New("rules and context paths are required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		rulesPath:   rulesPath,
		contextPath: contextPath,
		debounce:    150 * time.Millisecond,
		fsw:         fsw,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		watched:     map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.debounce <= 0 {
		w.debounce = 150 * time.Millisecond
	}
	return w, nil
}

// Start performs the initial load and begins watching. Watching targets the
// parent directories so editors that replace files via rename are still seen.
func (w *Watcher) Start() (Rules, Context, error) {
	rules := LoadOrBootstrap(w.rulesPath)
	ctx := LoadContext(w.contextPath)
	if err := w.refreshTargets(); err != nil {
		return nil, nil, err
	}
	if w.onChange != nil {
		w.onChange(rules, ctx)
	}
	go w.loop()
	return rules, ctx, nil
}

// Close stops file watching.
func (w *Watcher) Close() error {
	close(w.stop)
	<-w.done
	return w.fsw.Close()
}

func (w *Watcher) refreshTargets() error {
	desired := map[string]struct{}{
		filepath.Dir(w.rulesPath):   {},
		filepath.Dir(w.contextPath): {},
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for path := range desired {
		if _, ok := w.watched[path]; ok {
			continue
		}
		if err := w.addWatch(path); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) addWatch(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := w.fsw.Add(path); err != nil {
		return err
	}
	w.watched[path] = struct{}{}
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	var timer *time.Timer
	schedule := func() {
		if timer == nil {
			timer = time.AfterFunc(w.debounce, func() {
				w.reload()
			})
			return
		}
		timer.Reset(w.debounce)
	}

	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case err := <-w.fsw.Errors:
			if err != nil && w.onError != nil {
				w.onError(err)
			}
		case evt := <-w.fsw.Events:
			if !w.relevant(evt.Name) {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule()
			}
		}
	}
}

func (w *Watcher) relevant(name string) bool {
	clean := filepath.Clean(name)
	return clean == filepath.Clean(w.rulesPath) || clean == filepath.Clean(w.contextPath)
}

// reload re-reads both files. Loading is self-defaulting and cannot fail, so
// onError never fires here.
func (w *Watcher) reload() {
	rules := LoadOrBootstrap(w.rulesPath)
	ctx := LoadContext(w.contextPath)
	if w.onChange != nil {
		w.onChange(rules, ctx)
	}
}
