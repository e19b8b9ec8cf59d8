package watcher

import "github.com/fsnotify/fsnotify"

// Handle feeds a raw filesystem event to the watcher.
func (w *Watcher) Handle(event fsnotify.Event) {
	w.handle(event)
}
