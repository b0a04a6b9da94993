package notify_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdw/jot/pkg/core"
	"github.com/avdw/jot/pkg/notify"
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

func TestDesktop_PermissionDefaultUntilRequested(t *testing.T) {
	storage := newMemStorage()
	d := notify.NewDesktop(notify.Config{Command: "definitely-not-a-binary", Storage: storage})

	assert.Equal(t, core.PermissionDefault, d.Permission())
	assert.False(t, d.Supported())
}

func TestDesktop_RequestPersistsDenied(t *testing.T) {
	storage := newMemStorage()
	d := notify.NewDesktop(notify.Config{Command: "definitely-not-a-binary", Storage: storage})

	p, err := d.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.PermissionDenied, p)

	// State survives a new notifier over the same storage.
	again := notify.NewDesktop(notify.Config{Command: "definitely-not-a-binary", Storage: storage})
	assert.Equal(t, core.PermissionDenied, again.Permission())
}

func TestDesktop_RequestGrantsWhenBinaryExists(t *testing.T) {
	storage := newMemStorage()
	// Any binary guaranteed on PATH in a test environment works here.
	d := notify.NewDesktop(notify.Config{Command: "go", Storage: storage})

	require.True(t, d.Supported())
	p, err := d.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.PermissionGranted, p)
	assert.Equal(t, core.PermissionGranted, d.Permission())
}

func TestDesktop_ShowFailsWithoutBinary(t *testing.T) {
	d := notify.NewDesktop(notify.Config{Command: "definitely-not-a-binary"})
	assert.Error(t, d.Show(context.Background(), "title", "body"))
}

func TestDisabled(t *testing.T) {
	var d notify.Disabled

	assert.False(t, d.Supported())
	assert.Equal(t, core.PermissionDenied, d.Permission())

	p, err := d.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.PermissionDenied, p)
	assert.NoError(t, d.Show(context.Background(), "t", "b"))
}
