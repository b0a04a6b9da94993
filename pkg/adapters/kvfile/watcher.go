package kvfile

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/avdw/jot/pkg/core"
)

// debounceWindow coalesces the burst of filesystem events a single atomic
// write produces into one logical change per key.
const debounceWindow = 200 * time.Millisecond

// Watch emits a core.Event whenever a record whose key matches the doublestar
// pattern changes on disk. It lets a long-running process pick up records
// written by other invocations sharing the same data directory.
//
// The channel is closed when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.Dir); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan core.Event, 16)
	deb := newDebouncer(debounceWindow)

	go func() {
		defer close(events)
		defer watcher.Close()
		s.run(ctx, watcher, deb, pattern, events)
		deb.stop()
	}()

	return events, nil
}

func (s *Store) run(ctx context.Context, watcher *fsnotify.Watcher, deb *debouncer, pattern string, events chan<- core.Event) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			s.processEvent(ctx, event, deb, pattern, events)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if s.logger != nil {
				s.logger.Error("fsnotify error", "error", err)
			}
		}
	}
}

func (s *Store) processEvent(ctx context.Context, event fsnotify.Event, deb *debouncer, pattern string, events chan<- core.Event) {
	key, ok := s.resolveKey(event.Name)
	if !ok {
		return
	}
	if match, err := doublestar.Match(pattern, key); err != nil || !match {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	if s.logger != nil {
		s.logger.Debug("record changed on disk", "key", key, "op", event.Op.String())
	}

	deb.add(core.Event{Type: eType, Key: key, Timestamp: time.Now().Unix()}, func(e core.Event) {
		defer func() {
			// Recover if the channel was closed during shutdown.
			_ = recover()
		}()
		select {
		case events <- e:
		case <-ctx.Done():
		}
	})
}

// resolveKey maps a filesystem path back to a record key. Temporary atomic
// write files and foreign files are skipped.
func (s *Store) resolveKey(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) {
		return "", false
	}
	if filepath.Ext(base) != ".json" {
		return "", false
	}
	return strings.TrimSuffix(base, ".json"), true
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

// debouncer delays emission per key, keeping only the latest event.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	stopped bool
	timers  map[string]*time.Timer
	latest  map[string]core.Event
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		latest: make(map[string]core.Event),
	}
}

func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.latest[e.Key] = e
	if t, ok := d.timers[e.Key]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[e.Key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		ev := d.latest[e.Key]
		delete(d.timers, e.Key)
		delete(d.latest, e.Key)
		d.mu.Unlock()

		emit(ev)
	})
}

// stop prevents further emissions. Pending timers are cancelled; the emit
// callback never runs after stop returns.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
