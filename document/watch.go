package document

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
)

// DefaultWatchDebounce is how long a file must be quiet before it is handled.
const DefaultWatchDebounce = 300 * time.Millisecond

// WatchHandler is called with a changed file that the selector accepts.
// Errors are logged; they do not stop the watch.
type WatchHandler func(ctx context.Context, path string) error

// Matcher decides which files under a watched root are handled. *Selector
// and *SwappableSelector implement it.
type Matcher interface {
	Match(rel string) bool
}

// SwappableSelector is a Matcher whose Selector can be replaced while a watch
// is running. Events after Store are matched against the new globs.
type SwappableSelector struct {
	current atomic.Pointer[Selector]
}

// NewSwappableSelector starts with s.
func NewSwappableSelector(s *Selector) *SwappableSelector {
	sw := &SwappableSelector{}
	sw.current.Store(s)
	return sw
}

// Store replaces the selector.
func (s *SwappableSelector) Store(sel *Selector) { s.current.Store(sel) }

// Load returns the selector in effect.
func (s *SwappableSelector) Load() *Selector { return s.current.Load() }

// Match uses the selector in effect; nothing matches before one is stored.
func (s *SwappableSelector) Match(rel string) bool {
	sel := s.current.Load()
	return sel != nil && sel.Match(rel)
}

var (
	_ Matcher = (*Selector)(nil)
	_ Matcher = (*SwappableSelector)(nil)
)

// WatchOptions configure Watch.
type WatchOptions struct {
	Selector Matcher
	Debounce time.Duration
}

// Watch calls handler for selected files under roots as they are written or
// created, once per burst of events. New directories are picked up as they
// appear. It blocks until ctx is cancelled and returns once every pending
// handler has finished.
//
// A handler that rewrites its file triggers one more event; documenting is
// idempotent, so the second pass finds nothing to change.
func Watch(ctx context.Context, roots []string, opts WatchOptions, handler WatchHandler) error {
	if opts.Selector == nil {
		return errors.Mark(errors.New("watch needs a selector"), errors.ErrInvalidRequest)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultWatchDebounce
	}
	log := logger.Named("watch")

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer fw.Close()

	w := &watchState{
		fw:       fw,
		opts:     opts,
		handler:  handler,
		timers:   make(map[string]*time.Timer),
		rootOf:   make(map[string]string),
		debounce: opts.Debounce,
	}
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve %s", root)
		}
		if err := w.addTree(abs, abs); err != nil {
			return err
		}
		log.Infow("Watching", logger.FieldRoot, abs)
	}

	defer w.drain()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Watch error", logger.FieldError, err)
		}
	}
}

type watchState struct {
	fw       *fsnotify.Watcher
	opts     WatchOptions
	handler  WatchHandler
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	rootOf map[string]string // watched dir -> root it was found under
	wg     sync.WaitGroup
	closed bool
}

// addTree watches dir and every non-hidden directory below it.
func (w *watchState) addTree(dir, root string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fw.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		w.mu.Lock()
		w.rootOf[path] = root
		w.mu.Unlock()
		return nil
	})
}

func (w *watchState) handle(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path := event.Name

	w.mu.Lock()
	root, ok := w.rootOf[filepath.Dir(path)]
	w.mu.Unlock()
	if !ok {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !isHidden(filepath.Base(path)) {
				if err := w.addTree(path, root); err != nil {
					logger.Warnw("Failed to watch new directory",
						logger.FieldFile, path,
						logger.FieldError, err)
				}
			}
			return
		}
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || !w.opts.Selector.Match(rel) {
		return
	}
	w.schedule(ctx, path)
}

func (w *watchState) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if t, ok := w.timers[path]; ok && t.Stop() {
		// the pending call is replaced
		w.wg.Done()
	}
	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.timers[path] == timer {
			delete(w.timers, path)
		}
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		if err := w.handler(ctx, path); err != nil {
			logger.Errorw("Watch handler failed",
				logger.FieldFile, path,
				logger.FieldError, err)
		}
	})
	w.timers[path] = timer
}

// drain cancels pending timers and waits for running handlers.
func (w *watchState) drain() {
	w.mu.Lock()
	w.closed = true
	for path, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
