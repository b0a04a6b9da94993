// Package reminder fires due note reminders exactly once and clears them.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avdw/jot/pkg/core"
)

// DefaultInterval is the wall-clock polling interval. A reminder fires on the
// first scan at or after its due time, so worst-case latency equals this.
const DefaultInterval = time.Minute

// previewLimit caps the notification body taken from the note content.
const previewLimit = 100

// Scheduler periodically scans the store for due reminders. Each scan reads
// the store's current collection, never a captured snapshot, so notes created
// after the loop started are still picked up.
type Scheduler struct {
	store    *core.Store
	notifier core.Notifier
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// Config holds the dependencies for a Scheduler.
type Config struct {
	Store    *core.Store
	Notifier core.Notifier
	Interval time.Duration // defaults to DefaultInterval
	Logger   *slog.Logger
	Now      func() time.Time // defaults to time.Now
}

// New wires a Scheduler.
func New(cfg Config) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		store:    cfg.Store,
		notifier: cfg.Notifier,
		interval: interval,
		logger:   cfg.Logger,
		now:      now,
	}
}

// Run polls until ctx is cancelled. On startup it issues the one-time
// permission request if the notifier reports an undetermined state; this is
// not retried if declined.
func (s *Scheduler) Run(ctx context.Context) error {
	s.requestPermission(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan fires every armed reminder at or before now and clears it in the same
// step, so it cannot fire twice. Returns the number of reminders fired.
func (s *Scheduler) Scan(ctx context.Context) int {
	now := s.now()
	fired := 0
	for _, n := range s.store.ListAll() {
		if n.Reminder == nil || n.Reminder.After(now) {
			continue
		}
		s.fire(ctx, n)
		fired++
	}
	return fired
}

func (s *Scheduler) fire(ctx context.Context, n core.Note) {
	if s.notifier != nil && s.notifier.Supported() && s.notifier.Permission() == core.PermissionGranted {
		title := fmt.Sprintf("Reminder: %s", n.Title)
		if err := s.notifier.Show(ctx, title, preview(n.Content)); err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to show notification", "id", n.ID, "error", err)
			}
		}
	} else if s.logger != nil {
		s.logger.Debug("notification skipped", "id", n.ID)
	}

	// Clearing must happen even when the side effect was skipped; the reminder
	// pipeline never blocks on presentation capability.
	if err := s.store.Update(ctx, n.ID, core.Patch{ClearReminder: true}); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to clear reminder", "id", n.ID, "error", err)
		}
	}
}

func (s *Scheduler) requestPermission(ctx context.Context) {
	if s.notifier == nil || !s.notifier.Supported() {
		return
	}
	if s.notifier.Permission() != core.PermissionDefault {
		return
	}
	p, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("permission request failed", "error", err)
		}
		return
	}
	if s.logger != nil {
		s.logger.Info("notification permission resolved", "permission", p)
	}
}

// preview truncates content for the notification body, appending an ellipsis
// marker when something was cut.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}
