package document

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cornish/textivus-minimap/logging"
)

// Watcher reports changes to one file on disk.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
	errors  chan error
}

// Watch starts watching path until ctx is done. The parent directory is
// watched so editors that save by renaming a new file over the old one
// are noticed too.
func Watch(ctx context.Context, path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changes: make(chan struct{}, 1),
		errors:  make(chan error, 1),
	}
	go w.run(ctx)
	return w, nil
}

// Changes delivers a value after the file was written. Bursts of writes
// collapse into one value; the channel closes when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Errors delivers watcher errors. Errors arriving while one is pending are
// dropped.
func (w *Watcher) Errors() <-chan error { return w.errors }

func (w *Watcher) run(ctx context.Context) {
	defer close(w.changes)
	defer w.watcher.Close()
	log := logging.L(ctx).Named("watch")

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debug("file event", zap.String("path", w.path), zap.Stringer("op", event.Op))
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", zap.Error(err))
			select {
			case w.errors <- err:
			default:
			}

		case <-ctx.Done():
			log.Debug("stopped", zap.String("path", w.path))
			return
		}
	}
}
