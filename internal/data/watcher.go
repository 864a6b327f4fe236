package data

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the manager's data files when they change on disk,
// so long-running sessions pick up calendar and task edits without a
// restart.
type Watcher struct {
	manager Watched
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watched is the subset of Manager the watcher drives.
type Watched interface {
	Reload() error
	Paths() (profile, calendar, tasks string)
}

// NewWatcher starts watching the manager's data files. The manager must
// have been loaded with LoadFiles first.
func NewWatcher(m Watched) (*Watcher, error) {
	profile, calendar, tasks := m.Paths()
	if profile == "" {
		return nil, fmt.Errorf("manager has no file paths to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the parent directories; editors often replace files rather
	// than writing in place.
	dirs := map[string]bool{}
	for _, p := range []string{profile, calendar, tasks} {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		manager: m,
		watcher: fsw,
		done:    make(chan struct{}),
	}
	go w.loop(map[string]bool{profile: true, calendar: true, tasks: true})
	return w, nil
}

func (w *Watcher) loop(files map[string]bool) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !files[event.Name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := w.manager.Reload(); err != nil {
				log.Printf("[data] reload after change to %s failed: %v", event.Name, err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[data] watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Stop stops watching and releases the underlying watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}
