// Package watch re-runs JSON repair whenever a watched file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
	"github.com/damian-dev1/json-tools-and-utilities/internal/logger"
)

// DefaultDebounce is the quiet period after the last write before a file is
// repaired again.
const DefaultDebounce = 500 * time.Millisecond

// Result is the outcome of one repair run.
type Result struct {
	Path   string
	Repair *jsontools.RepairResult
	Err    error
}

// Handler receives every repair result. It is called from a timer goroutine,
// never concurrently for the same path.
type Handler func(Result)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithFs reads watched files through fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(w *Watcher) {
		if fs != nil {
			w.fs = fs
		}
	}
}

// WithRepairOptions sets the options passed to jsontools.Repair.
func WithRepairOptions(opts jsontools.RepairOptions) Option {
	return func(w *Watcher) {
		w.opts = opts
	}
}

// Watcher watches JSON files and reports a fresh repair after each burst of
// writes.
type Watcher struct {
	watcher *fsnotify.Watcher
	fs      afero.Fs
	opts    jsontools.RepairOptions
	handler Handler
	delay   time.Duration

	mu        sync.Mutex
	watching  map[string]func(func())
	closed    bool
	callbacks sync.WaitGroup
}

// New creates a Watcher that reports to handler.
func New(handler Handler, opts ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: handler cannot be nil")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		fs:       afero.NewOsFs(),
		handler:  handler,
		delay:    DefaultDebounce,
		watching: make(map[string]func(func())),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add starts watching path. The parent directory is watched so editors that
// replace the file on save are still noticed.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	if _, ok := w.watching[absPath]; !ok {
		w.watching[absPath] = debounce.New(w.delay)
	}
	w.mu.Unlock()

	return w.watcher.Add(filepath.Dir(absPath))
}

// Check repairs path once and returns the result without calling the handler.
func (w *Watcher) Check(path string) Result {
	res := Result{Path: path}

	f, err := w.fs.Open(path)
	if err != nil {
		res.Err = fmt.Errorf("open %s: %w", path, err)
		return res
	}
	defer f.Close()

	text, err := jsontools.ReadText(f)
	if err != nil {
		res.Err = err
		return res
	}
	res.Repair, res.Err = jsontools.Repair(text, w.opts)
	return res
}

// Run dispatches file events until ctx is done or the watcher is closed.
// It closes the watcher and waits for running handlers before returning.
func (w *Watcher) Run(ctx context.Context) error {
	lgr := logger.FromContext(ctx)
	defer func() {
		w.close()
		w.callbacks.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			lgr.Error(err, "watcher error")
		}
	}
}

// Close stops the watcher. Pending debounced runs are dropped.
func (w *Watcher) Close() error {
	return w.close()
}

func (w *Watcher) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

func (w *Watcher) schedule(ctx context.Context, name string) {
	absPath, err := filepath.Abs(name)
	if err != nil {
		return
	}

	w.mu.Lock()
	debounced, watched := w.watching[absPath]
	w.mu.Unlock()
	if !watched {
		return
	}

	logger.FromContext(ctx).V(1).Info("change detected", logger.FileKey, absPath)
	debounced(func() {
		w.mu.Lock()
		if w.closed || ctx.Err() != nil {
			w.mu.Unlock()
			return
		}
		w.callbacks.Add(1)
		w.mu.Unlock()
		defer w.callbacks.Done()

		w.handler(w.Check(absPath))
	})
}
