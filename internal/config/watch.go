/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher hot-reloads a yaml tunables file into a Store whenever the file
// changes, so a long-lived host process can retune the proxy's timing
// knobs without restarting
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	store   *Store
	done    chan struct{}
}

// WatchFile starts watching path's directory and applies reloads to store
//   - the file need not exist yet; Store keeps its prior value until it does
func WatchFile(path string, store *Store) (w *Watcher, err error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	dir := filepath.Dir(path)
	if err = fsw.Add(dir); err != nil {
		fsw.Close()
		return
	}
	w = &Watcher{watcher: fsw, path: path, store: store, done: make(chan struct{})}
	go w.loop()
	return
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if t, err := LoadFile(w.path, w.store.Get()); err == nil {
				w.store.Set(t)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher
func (w *Watcher) Close() (err error) {
	err = w.watcher.Close()
	<-w.done
	return
}
