// Package jot is the Composition Root for the jot note store.
//
// It connects the core business logic (Domain Layer) with the infrastructure
// adapters (Persistence, Notification) using the Hexagonal Architecture
// pattern.
//
// Philosophy:
//
// jot is a single-user note store with reminders. The canonical collection
// lives in memory and every mutation is persisted synchronously through a
// key-value port; the visible list is always derived, never mutated. The
// default adapter keeps one flat JSON file per record, but the core is
// agnostic and any core.Storage implementation can back it.
//
// Features:
//
//   - Note store: create, update, delete, list; categories with seeded defaults.
//   - Query engine: pure search/category filtering with important-first ordering.
//   - Reminder scheduler: interval scans that fire each armed reminder once.
//   - Default adapter (flat files): atomic writes plus an fsnotify change watcher.
//
// Usage:
//
//	store, err := jot.Open(ctx, dir, jot.WithLogger(logger))
//	if err != nil { ... }
//
//	note, err := store.Create(ctx, core.Draft{Title: "groceries", Category: "personal"})
//
//	sched := jot.NewScheduler(store, notifier, jot.WithInterval(time.Minute))
//	go sched.Run(ctx)
package jot
