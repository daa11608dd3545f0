// Package watch monitors a data directory for catalog file changes so a
// running session can rebuild its universe when a .ssc file is edited.
package watch

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // catalog file edited
	ChangeRemoved                    // catalog file deleted
	ChangeAdded                      // new catalog file appeared
)

// Change represents a detected change to a catalog file.
type Change struct {
	Kind ChangeKind
	File string // absolute path
}

// Watcher monitors a data directory for catalog file changes using
// fsnotify. Rapid bursts of writes to the same file are coalesced into a
// single change.
type Watcher struct {
	Dir     string
	Changes <-chan Change // read-only external channel

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a new watcher for the given data directory.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Dir:     dir,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching the data directory for changes.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file. Editors typically produce
	// several write events per save.
	const debounce = 100 * time.Millisecond
	pending := make(map[string]fsnotify.Event)
	last := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file, ev := range pending {
					w.emitChange(file, ev)
				}
				return
			}

			if !isCatalogFile(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				pending[event.Name] = event
				last[event.Name] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, t := range last {
				if now.Sub(t) >= debounce {
					w.emitChange(file, pending[file])
					delete(pending, file)
					delete(last, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func isCatalogFile(name string) bool {
	return strings.HasSuffix(filepath.Base(name), ".ssc")
}

func (w *Watcher) emitChange(file string, ev fsnotify.Event) {
	kind := ChangeModified
	switch {
	case ev.Has(fsnotify.Remove):
		kind = ChangeRemoved
	case ev.Has(fsnotify.Create):
		kind = ChangeAdded
	}
	w.changes <- Change{Kind: kind, File: file}
}
