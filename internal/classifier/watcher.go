package classifier

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handle holds the active policy and supports atomic replacement, so HTTP
// handlers can classify concurrently while the watcher swaps in a new policy.
type Handle struct {
	p atomic.Pointer[Policy]
}

// NewHandle creates a handle seeded with the given policy.
func NewHandle(p Policy) *Handle {
	h := &Handle{}
	h.p.Store(&p)
	return h
}

// Policy returns the currently active policy.
func (h *Handle) Policy() Policy {
	return *h.p.Load()
}

// Swap replaces the active policy.
func (h *Handle) Swap(p Policy) {
	h.p.Store(&p)
}

// Watcher reloads the policy file on change and swaps it into a Handle.
// Malformed or invalid files are logged and skipped; the previous policy
// stays active.
type Watcher struct {
	handle  *Handle
	path    string
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher starts watching the policy file's directory. Watching the
// directory rather than the file survives editors that replace via rename.
func NewWatcher(handle *Handle, path string, logger *zap.Logger) (*Watcher, error) {
	if handle == nil {
		return nil, fmt.Errorf("policy handle is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		handle:  handle,
		path:    path,
		logger:  logger,
		watcher: fsw,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("policy watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	p, err := LoadPolicy(w.path)
	if err != nil {
		w.logger.Warn("keeping previous classification policy",
			zap.String("path", w.path),
			zap.Error(err),
		)
		return
	}
	w.handle.Swap(p)
	w.logger.Info("reloaded classification policy",
		zap.String("path", w.path),
		zap.Int("text_keywords", len(p.TextKeywords)),
		zap.Int("tts_keywords", len(p.TTSKeywords)),
	)
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
