package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeated events for the same file; editors often write
// several times per save.
const debounce = 100 * time.Millisecond

// Change is one debounced edit to a scenario or motion script.
type Change struct {
	Path string
	// Removed is set when the file was deleted or renamed away, so there is
	// nothing to reload.
	Removed bool
}

// IsScenario reports whether the change is to a YAML scenario file.
func (c Change) IsScenario() bool {
	return isSpecFile(c.Path)
}

// Watcher reports changed scenario and script files. It watches
// directories; a file argument watches the directory holding it.
type Watcher struct {
	fsw     *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("scenario: watch: %w", err)
	}

	for _, dir := range watchDirs(paths) {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("scenario: watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fsw:     fsw,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// watchDirs maps each path to the directory to watch, once each.
func watchDirs(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var dirs []string
	for _, p := range paths {
		dir := filepath.Clean(p)
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Close stops the watcher and closes Events and Errors. It is safe to
// call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	var d debouncer
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			change, ok := changeOf(event)
			if !ok || !d.allow(change.Path, time.Now()) {
				continue
			}
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// keep the first unread error, drop the rest
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// changeOf filters fsnotify events down to scenario and script edits.
func changeOf(event fsnotify.Event) (Change, bool) {
	if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
		return Change{}, false
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Change{Path: event.Name, Removed: true}, true
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		return Change{Path: event.Name}, true
	}
	return Change{}, false
}

// debouncer remembers when each path last passed.
type debouncer struct {
	last map[string]time.Time
}

func (d *debouncer) allow(path string, now time.Time) bool {
	if d.last == nil {
		d.last = make(map[string]time.Time)
	}
	if t, ok := d.last[path]; ok && now.Sub(t) < debounce {
		return false
	}
	d.last[path] = now
	return true
}
