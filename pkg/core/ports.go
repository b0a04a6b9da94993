package core

import "context"

// Storage is the key-value persistence port. Adhering to this interface keeps
// the store independent of the underlying mechanism (flat files, SQLite, an
// in-memory map for tests).
type Storage interface {
	// Get retrieves the raw record for a key. Returns ErrNoRecord when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set persists the raw record for a key, replacing any previous value.
	// The write completes before Set returns.
	Set(ctx context.Context, key string, value []byte) error
}

// Permission mirrors the tri-state notification permission model.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notifier is the notification-presentation port. The scheduler only decides
// when a reminder fires; showing it is delegated here.
type Notifier interface {
	// Supported reports whether the host can show notifications at all.
	Supported() bool

	// Permission returns the current permission state.
	Permission() Permission

	// RequestPermission asks the host for permission and returns the outcome.
	RequestPermission(ctx context.Context) (Permission, error)

	// Show displays a notification.
	Show(ctx context.Context, title, body string) error
}

// EventType represents the type of change observed in storage.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a persisted record, as reported by a watching
// storage adapter.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}
