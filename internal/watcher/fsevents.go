package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/basket/internal/apriori"
)

// DefaultDebounce is how long the Watcher waits after the last change
// before re-mining.
const DefaultDebounce = 500 * time.Millisecond

// MineFunc reads and mines the dataset at path.
type MineFunc func(path string) (*apriori.Result, error)

// Sink receives the outcome of every mine, successful or not.
type Sink func(path string, res *apriori.Result, err error)

// Watcher re-mines a dataset file each time it is written.
type Watcher struct {
	path     string
	mine     MineFunc
	sink     Sink
	debounce time.Duration
	log      logrus.FieldLogger

	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
	stopped sync.Once
}

// New creates a Watcher for the dataset at path.
func New(path string, mine MineFunc, sink Sink) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("dataset path cannot be empty")
	}
	if mine == nil || sink == nil {
		return nil, fmt.Errorf("mine and sink functions are required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	return &Watcher{
		path:     abs,
		mine:     mine,
		sink:     sink,
		debounce: DefaultDebounce,
		log:      logrus.StandardLogger(),
		stopCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the debounce window. It must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// SetLogger replaces the logger. It must be called before Start.
func (w *Watcher) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		w.log = log
	}
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start mines the dataset once, then watches it for changes in the
// background.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.fsw = fsw

	w.process()

	w.wg.Add(1)
	go w.run()

	w.log.WithField("path", w.path).Info("watching dataset")
	return nil
}

// run consumes fsnotify events until Stop is called.
func (w *Watcher) run() {
	defer w.wg.Done()

	// fire is nil while no change is pending.
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.WithFields(logrus.Fields{"path": ev.Name, "op": ev.Op.String()}).Debug("dataset changed")
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil
			w.process()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watcher error")

		case <-w.stopCh:
			return
		}
	}
}

// relevant reports whether ev changed the watched file's contents.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// process mines the dataset and hands the outcome to the sink.
func (w *Watcher) process() {
	start := time.Now()
	res, err := w.mine(w.path)
	if err != nil {
		w.log.WithError(err).WithField("path", w.path).Error("mining failed")
	} else {
		w.log.WithFields(logrus.Fields{
			"path":     w.path,
			"itemsets": res.Table.Len(),
			"rules":    len(res.Rules),
			"elapsed":  time.Since(start).String(),
		}).Info("dataset mined")
	}
	w.sink(w.path, res, err)
}

// Stop halts the watcher. Pending debounced changes are dropped. Stop is
// safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopped.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		if w.fsw != nil {
			err = w.fsw.Close()
		}
	})
	return err
}
