// Package shaderwatch reports edited shader files so the render thread can
// rebuild the programs that use them.
package shaderwatch

import (
	"ShaderLab/internal/logger"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher queues the base names of changed files in a directory. The
// watching goroutine never touches GL; callers Drain the queue on the
// render thread.
type Watcher struct {
	watcher *fsnotify.Watcher
	filter  func(name string) bool
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	pending []string
	seen    map[string]bool
}

// New watches dir. filter selects which file names are queued; nil queues all.
func New(dir string, filter func(name string) bool) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		watcher: fw,
		filter:  filter,
		done:    make(chan struct{}),
		seen:    make(map[string]bool),
	}
	w.wg.Add(1)
	go w.run()
	logger.Log.Info("Watching shaders", zap.String("dir", dir))
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Editors often save via rename, so Create counts as a change
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				w.queue(filepath.Base(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("Shader watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) queue(name string) {
	if w.filter != nil && !w.filter(name) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen[name] {
		return
	}
	w.seen[name] = true
	w.pending = append(w.pending, name)
}

// Drain returns the files changed since the last call, each once, in the
// order they first changed.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	out := w.pending
	w.pending = nil
	w.seen = make(map[string]bool)
	return out
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
