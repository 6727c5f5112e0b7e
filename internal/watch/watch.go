// Package watch reloads the board file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/jask/jaskboard/internal/board"
)

// Callback receives the re-parsed board or the error that prevented it.
// It runs on the watcher's goroutine.
type Callback func(board.Spec, error)

// Watcher watches a board file's directory and re-parses the file after
// writes settle. Editors often replace files instead of writing them, so the
// directory is watched rather than the file.
type Watcher struct {
	path     string
	debounce time.Duration
	log      logrus.FieldLogger
	onChange Callback

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	cancel  context.CancelFunc
	done    chan struct{}
}

// New returns a stopped watcher. A zero debounce uses 200ms.
func New(path string, debounce time.Duration, log logrus.FieldLogger, onChange Callback) *Watcher {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Watcher{path: path, debounce: debounce, log: log, onChange: onChange}
}

// Start begins watching. It fails if the directory cannot be watched or the
// watcher is already running.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return fmt.Errorf("already watching %s", w.path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch board directory: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.watcher = fw
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.loop(ctx, fw, w.done)

	w.log.WithField("path", w.path).Debug("watching board file")
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.WithField("event", ev.String()).Debug("board file changed")
			w.schedule(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("board watcher error")
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.Reload()
	})
}

// Reload parses the board file now and hands the result to the callback.
func (w *Watcher) Reload() {
	spec, err := board.Load(w.path)
	if err != nil {
		w.log.WithError(err).Warn("board reload failed")
	}
	if w.onChange != nil {
		w.onChange(spec, err)
	}
}

// Close stops watching and waits for the watch goroutine to exit. It is
// safe to call on a watcher that never started.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.watcher == nil {
		w.mu.Unlock()
		return nil
	}
	w.cancel()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	fw, done := w.watcher, w.done
	w.watcher = nil
	w.mu.Unlock()

	err := fw.Close()
	<-done
	if err != nil {
		return fmt.Errorf("close board watcher: %w", err)
	}
	return nil
}
