package jot

import (
	"context"
	"log/slog"
	"time"

	"github.com/avdw/jot/pkg/adapters/kvfile"
	"github.com/avdw/jot/pkg/core"
	"github.com/avdw/jot/pkg/reminder"
)

// Version exposes the version of the library.
const Version = "0.2.0"

// options holds the internal configuration for wiring.
type options struct {
	logger   *slog.Logger
	storage  core.Storage
	now      func() time.Time
	interval time.Duration
}

// Option defines a functional option for configuring jot.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger used by the store and adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage injects a custom storage adapter (e.g. an in-memory mock).
// If provided, the default file adapter is skipped and dir is ignored.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithClock overrides the time source (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithInterval sets the reminder polling interval.
func WithInterval(interval time.Duration) Option {
	return func(o *options) {
		o.interval = interval
	}
}

// Open wires a note store backed by the file adapter at dir and loads the
// persisted collections.
func Open(ctx context.Context, dir string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	storage := o.storage
	if storage == nil {
		files, err := kvfile.New(kvfile.Config{Dir: dir, Logger: o.logger})
		if err != nil {
			return nil, err
		}
		storage = files
	}

	store := core.NewStore(core.StoreConfig{
		Storage: storage,
		Logger:  o.logger,
		Now:     o.now,
	})
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// NewScheduler wires a reminder scheduler for the store. The notifier is
// explicit because it usually shares the store's storage for permission state.
func NewScheduler(store *core.Store, notifier core.Notifier, opts ...Option) *reminder.Scheduler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return reminder.New(reminder.Config{
		Store:    store,
		Notifier: notifier,
		Interval: o.interval,
		Logger:   o.logger,
		Now:      o.now,
	})
}
