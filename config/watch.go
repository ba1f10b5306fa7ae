package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// TuningWatcher reads a tuning file again whenever it changes on disk. The
// raw contents are delivered on Updates; parsing reads the live configuration
// so it belongs to the goroutine that applies tunings (see ParseTuning).
type TuningWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Updates chan []byte
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchTuning starts watching path. The containing directory is watched so
// editors that replace the file on save are still seen.
func WatchTuning(path string) (*TuningWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch tuning %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch tuning %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch tuning %s: %w", path, err)
	}

	tw := &TuningWatcher{
		watcher: w,
		path:    abs,
		Updates: make(chan []byte, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go tw.run()
	log.Printf("[tuning] Watching %s", abs)
	return tw, nil
}

// Close stops the watcher. Updates and Errors are closed once the watch
// goroutine has exited.
func (w *TuningWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *TuningWatcher) run() {
	defer func() {
		close(w.Updates)
		close(w.Errors)
		close(w.done)
	}()

	// Saves usually arrive as several events; reload once they settle.
	settle := time.NewTimer(reloadDebounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			settle.Reset(reloadDebounce)
		case <-settle.C:
			data, err := os.ReadFile(w.path)
			if err != nil {
				w.send(nil, fmt.Errorf("read tuning %s: %w", w.path, err))
				continue
			}
			w.send(data, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *TuningWatcher) send(data []byte, err error) {
	if err == nil {
		select {
		case w.Updates <- data:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}
