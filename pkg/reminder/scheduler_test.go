package reminder_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdw/jot/pkg/core"
	"github.com/avdw/jot/pkg/reminder"
)

type memStorage struct {
	mu      sync.Mutex
	records map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{records: make(map[string][]byte)}
}

func (m *memStorage) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[key]
	if !ok {
		return nil, core.ErrNoRecord
	}
	return append([]byte(nil), data...), nil
}

func (m *memStorage) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = append([]byte(nil), value...)
	return nil
}

// mockNotifier records Show calls and permission requests.
type mockNotifier struct {
	mu         sync.Mutex
	supported  bool
	permission core.Permission
	requests   int
	shown      [][2]string // title, body
}

func (m *mockNotifier) Supported() bool {
	return m.supported
}

func (m *mockNotifier) Permission() core.Permission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.permission
}

func (m *mockNotifier) RequestPermission(ctx context.Context) (core.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	m.permission = core.PermissionGranted
	return m.permission, nil
}

func (m *mockNotifier) Show(ctx context.Context, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = append(m.shown, [2]string{title, body})
	return nil
}

func (m *mockNotifier) shownCalls() [][2]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][2]string(nil), m.shown...)
}

func newStore(t *testing.T, now *time.Time) *core.Store {
	t.Helper()
	store := core.NewStore(core.StoreConfig{
		Storage: newMemStorage(),
		Now:     func() time.Time { return *now },
	})
	require.NoError(t, store.Load(context.Background()))
	return store
}

func TestScan_FiresOnceAndClears(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := newStore(t, &now)
	ctx := context.Background()

	due := now.Add(-5 * time.Minute)
	note, err := store.Create(ctx, core.Draft{Title: "dentist", Content: "bring the referral", Category: "personal", Reminder: &due})
	require.NoError(t, err)

	notifier := &mockNotifier{supported: true, permission: core.PermissionGranted}
	sched := reminder.New(reminder.Config{
		Store:    store,
		Notifier: notifier,
		Now:      func() time.Time { return now },
	})

	assert.Equal(t, 1, sched.Scan(ctx))

	shown := notifier.shownCalls()
	require.Len(t, shown, 1)
	assert.Equal(t, "Reminder: dentist", shown[0][0])
	assert.Equal(t, "bring the referral", shown[0][1])

	got, ok := store.Get(note.ID)
	require.True(t, ok)
	assert.Nil(t, got.Reminder, "fired reminder must be disarmed")

	// A second scan performs no further action on that note.
	assert.Equal(t, 0, sched.Scan(ctx))
	assert.Len(t, notifier.shownCalls(), 1)
}

func TestScan_FutureReminderUntouched(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := newStore(t, &now)
	ctx := context.Background()

	later := now.Add(time.Hour)
	note, err := store.Create(ctx, core.Draft{Title: "later", Category: "work", Reminder: &later})
	require.NoError(t, err)

	notifier := &mockNotifier{supported: true, permission: core.PermissionGranted}
	sched := reminder.New(reminder.Config{Store: store, Notifier: notifier, Now: func() time.Time { return now }})

	assert.Equal(t, 0, sched.Scan(ctx))
	assert.Empty(t, notifier.shownCalls())

	got, _ := store.Get(note.ID)
	require.NotNil(t, got.Reminder)
	assert.True(t, later.Equal(*got.Reminder))
}

func TestScan_DeniedPermissionStillClears(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := newStore(t, &now)
	ctx := context.Background()

	due := now.Add(-time.Minute)
	note, err := store.Create(ctx, core.Draft{Title: "silent", Category: "work", Reminder: &due})
	require.NoError(t, err)

	notifier := &mockNotifier{supported: true, permission: core.PermissionDenied}
	sched := reminder.New(reminder.Config{Store: store, Notifier: notifier, Now: func() time.Time { return now }})

	assert.Equal(t, 1, sched.Scan(ctx))
	assert.Empty(t, notifier.shownCalls(), "side effect skipped without permission")

	got, _ := store.Get(note.ID)
	assert.Nil(t, got.Reminder, "reminder cleared even when the notification was skipped")
}

func TestScan_TruncatesPreview(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := newStore(t, &now)
	ctx := context.Background()

	due := now.Add(-time.Minute)
	long := strings.Repeat("abcde", 30) // 150 chars
	_, err := store.Create(ctx, core.Draft{Title: "long", Content: long, Category: "work", Reminder: &due})
	require.NoError(t, err)

	notifier := &mockNotifier{supported: true, permission: core.PermissionGranted}
	sched := reminder.New(reminder.Config{Store: store, Notifier: notifier, Now: func() time.Time { return now }})
	sched.Scan(ctx)

	shown := notifier.shownCalls()
	require.Len(t, shown, 1)
	body := shown[0][1]
	assert.True(t, strings.HasSuffix(body, "..."))
	assert.Equal(t, long[:100]+"...", body)
}

func TestScan_SeesNotesCreatedAfterStart(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := newStore(t, &now)
	ctx := context.Background()

	notifier := &mockNotifier{supported: true, permission: core.PermissionGranted}
	sched := reminder.New(reminder.Config{Store: store, Notifier: notifier, Now: func() time.Time { return now }})

	assert.Equal(t, 0, sched.Scan(ctx))

	// The scheduler must read the store's current collection on every scan,
	// not a snapshot captured at construction time.
	due := now.Add(-time.Second)
	_, err := store.Create(ctx, core.Draft{Title: "new", Category: "work", Reminder: &due})
	require.NoError(t, err)

	assert.Equal(t, 1, sched.Scan(ctx))
}

func TestRun_RequestsPermissionOnceAndStopsOnCancel(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := newStore(t, &now)

	notifier := &mockNotifier{supported: true, permission: core.PermissionDefault}
	sched := reminder.New(reminder.Config{
		Store:    store,
		Notifier: notifier,
		Interval: 10 * time.Millisecond,
		Now:      func() time.Time { return now },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, 1, notifier.requests, "permission requested once at startup, not per tick")
}
