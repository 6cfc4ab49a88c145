// Package watcher re-triggers analysis when the audited file changes.
// The parent directory is watched rather than the file itself: most editors
// replace files atomically, which would otherwise drop the watch.
package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"golang.org/x/time/rate"

	coreerrors "pyaudit/internal/core/errors"
	"pyaudit/internal/shared/observability"
)

type Watcher struct {
	fsWatcher *fsnotify.Watcher
	target    string
	debounce  time.Duration
	limiter   *rate.Limiter
	exclude   []glob.Glob
	onChange  func(path string)

	pendingMu sync.Mutex
	pending   bool
	timer     *time.Timer

	done chan struct{}
}

// New builds a watcher for a single file. maxEventsPerSecond caps how fast
// filesystem churn can reach the debounce stage; bursts beyond the cap are
// dropped, not queued.
func New(target string, debounce time.Duration, maxEventsPerSecond float64, exclude []string, onChange func(path string)) (*Watcher, error) {
	if onChange == nil {
		return nil, coreerrors.New(coreerrors.CodeValidation, "onChange callback is required")
	}

	compiled := make([]glob.Glob, 0, len(exclude))
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, coreerrors.Wrap(err, coreerrors.CodeValidation, "compile exclude glob")
		}
		compiled = append(compiled, g)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CodeInternal, "create fs watcher")
	}

	return &Watcher{
		fsWatcher: fsw,
		target:    filepath.Clean(target),
		debounce:  debounce,
		limiter:   rate.NewLimiter(rate.Limit(maxEventsPerSecond), int(maxEventsPerSecond)+1),
		exclude:   compiled,
		onChange:  onChange,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching and returns immediately; events are handled on a
// background goroutine until Close.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.target)
	if err := w.fsWatcher.Add(dir); err != nil {
		derr := &coreerrors.DomainError{
			Code:    coreerrors.CodeNotFound,
			Message: "watch directory",
			Err:     err,
		}
		return derr.WithContext(coreerrors.CtxPath, dir)
	}

	go w.run()
	return nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			observability.WatcherEventsTotal.Inc()

			if filepath.Clean(event.Name) != w.target || w.excluded(event.Name) {
				continue
			}
			if !w.limiter.Allow() {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.scheduleChange()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleChange() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	fire := w.pending
	w.pending = false
	w.pendingMu.Unlock()

	if fire {
		observability.WatcherReanalysesTotal.Inc()
		w.onChange(w.target)
	}
}

func (w *Watcher) excluded(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.exclude {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) Close() error {
	close(w.done)
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}
