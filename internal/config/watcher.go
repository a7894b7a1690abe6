// pattern: Imperative Shell

package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"fiberdesk/internal/logging"
)

// Watcher reloads the config file on change and hands the result to a
// callback. Theme and base-URL edits take effect without restarting.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger *logging.ScopedLogger
	done   chan struct{}
}

// Watch starts watching the config file in configDir ("" = default
// location). onChange runs on the watcher goroutine with each
// successfully reloaded Config; unparsable edits are logged and
// skipped.
func Watch(configDir string, logger *logging.ScopedLogger, onChange func(Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	path := PathInDir(configDir)
	// Watch the directory: editors replace the file on save, which
	// would orphan a watch on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, logger: logger, done: make(chan struct{})}

	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadFrom(path)
				if err != nil {
					logger.Warn("config reload failed", "path", path, "error", err)
					continue
				}
				logger.Info("config reloaded", "path", path)
				onChange(cfg)
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()

	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
