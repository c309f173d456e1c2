package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls a function when a watched file changes on disk.
// The parent directory is watched so atomic replacements are seen too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      zerolog.Logger

	mu    sync.Mutex
	files map[string]func()
	dirs  map[string]bool

	startOnce sync.Once
	done      chan struct{}
}

// NewWatcher creates a watcher. A zero debounce uses DefaultDebounce.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		debounce: debounce,
		log:      logger.WithComponent("watcher"),
		files:    make(map[string]func()),
		dirs:     make(map[string]bool),
		done:     make(chan struct{}),
	}, nil
}

// Watch registers onChange for path. Returns false without error when the
// file's directory does not exist.
func (w *Watcher) Watch(path string, onChange func()) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	dir := filepath.Dir(abs)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		w.log.Debug().Str("path", abs).Msg("not watching, directory missing")
		return false, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return false, fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = onChange
	w.log.Debug().Str("path", abs).Msg("watching file")
	return true, nil
}

// Start runs the event loop until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		go w.loop(ctx)
	})
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	started := true
	w.startOnce.Do(func() {
		started = false
	})
	if started {
		<-w.done
	}
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(event.Name)
			if w.callback(name) == nil {
				continue
			}
			w.log.Debug().Str("path", name).Str("op", event.Op.String()).Msg("file changed")

			pending[name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			for name := range pending {
				if fn := w.callback(name); fn != nil {
					fn()
				}
				delete(pending, name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) callback(path string) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[path]
}
