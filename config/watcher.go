package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
)

// DefaultDebounce absorbs the burst of events a single editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// ReloadCallback is called with the new, validated config after a reload.
type ReloadCallback func(*Config) error

// ownWriteWindow is how long events on a path are ignored after MarkOwnWrite.
// A single os.WriteFile produces more than one event.
const ownWriteWindow = time.Second

// ownWrites maps paths WriteDefault is about to write to the time of marking,
// so watchers skip those events instead of reloading a file we produced.
var ownWrites sync.Map

// MarkOwnWrite marks upcoming writes to path as ours.
func MarkOwnWrite(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	ownWrites.Store(path, time.Now())
}

func isOwnWrite(path string) bool {
	v, ok := ownWrites.Load(path)
	if !ok {
		return false
	}
	if time.Since(v.(time.Time)) < ownWriteWindow {
		return true
	}
	ownWrites.Delete(path)
	return false
}

// Watcher reloads a config file when it changes.
//
// The parent directory is watched rather than the file, since editors often
// save by renaming a temp file over the original.
type Watcher struct {
	path           string
	load           func() (*Config, error)
	watcher        *fsnotify.Watcher
	debouncePeriod time.Duration

	mu            sync.RWMutex
	callbacks     []ReloadCallback
	debounceTimer *time.Timer
	stopped       bool

	wg sync.WaitGroup
}

// NewWatcher creates a watcher for path. load produces the fresh config on
// each change; nil means LoadFromFile(path).
func NewWatcher(path string, load func() (*Config, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	if load == nil {
		load = func() (*Config, error) { return LoadFromFile(abs) }
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch config directory for %s", abs)
	}

	return &Watcher{
		path:           abs,
		load:           load,
		watcher:        fw,
		debouncePeriod: DefaultDebounce,
	}, nil
}

// SetDebounce overrides the debounce period. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debouncePeriod = d
}

// OnReload registers a callback to be called when config is reloaded
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for config file changes
func (w *Watcher) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.watchLoop()
	}()
}

// Stop stops watching and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.stopped = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if isOwnWrite(w.path) {
				logger.Debugw("Config watcher ignoring own write",
					logger.FieldConfig, w.path)
				continue
			}
			logger.Infow("Config watcher detected change",
				logger.FieldConfig, w.path,
				"op", event.Op.String())
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Config watcher error",
				logger.FieldError, err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.reload(); err != nil {
			logger.Errorw("Config reload failed",
				logger.FieldConfig, w.path,
				logger.FieldError, err)
		}
	})
}

// reload loads and validates the config, then runs the callbacks. An invalid
// file leaves the previous config in effect.
func (w *Watcher) reload() error {
	w.mu.RLock()
	stopped := w.stopped
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()
	if stopped {
		return nil
	}

	cfg, err := w.load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "reloaded config is invalid")
	}

	logger.Infow("Config reloaded successfully",
		logger.FieldConfig, w.path)

	for _, callback := range callbacks {
		if err := callback(cfg); err != nil {
			logger.Warnw("Config reload callback error",
				logger.FieldError, err)
		}
	}
	return nil
}
