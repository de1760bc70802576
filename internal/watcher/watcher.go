// Package watcher watches the wallboard's configuration directory.
package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/watchfire-io/wallboard/internal/config"
)

// DebounceDelay is how long a path must stay quiet before its change is reported.
const DebounceDelay = 100 * time.Millisecond

// EventType represents the type of configuration change.
type EventType int

const (
	EventSettingsChanged EventType = iota
	EventRosterChanged
)

func (t EventType) String() string {
	switch t {
	case EventSettingsChanged:
		return "settings_changed"
	case EventRosterChanged:
		return "roster_changed"
	default:
		return "unknown"
	}
}

// Event represents a configuration file change.
type Event struct {
	Type EventType
	Path string
}

// Watcher reports changes to settings.yaml and roster.yaml.
type Watcher struct {
	dir        string
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	logger     *slog.Logger
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a watcher for dir.
func New(dir string, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		dir:        dir,
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		logger:     logger.With("component", "watcher"),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start begins watching. The directory must exist.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher. Pending debounced events are dropped.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.logger.Debug("fsnotify", "op", event.Op.String(), "path", event.Name)
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename covers editors that save via write-to-temp then rename.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	eventType, ok := classify(event.Name)
	if !ok {
		return
	}

	w.debounceEvent(event.Name, func() {
		select {
		case w.eventsChan <- Event{Type: eventType, Path: event.Name}:
		case <-w.done:
		}
	})
}

func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(DebounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

func classify(path string) (EventType, bool) {
	switch filepath.Base(path) {
	case config.SettingsFileName:
		return EventSettingsChanged, true
	case config.RosterFileName:
		return EventRosterChanged, true
	}
	return 0, false
}
