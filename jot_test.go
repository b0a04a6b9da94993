package jot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdw/jot"
	"github.com/avdw/jot/pkg/core"
	"github.com/avdw/jot/pkg/notify"
	"github.com/avdw/jot/pkg/query"
)

func TestOpen_CreateAndReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := jot.Open(ctx, dir)
	require.NoError(t, err)

	created, err := store.Create(ctx, core.Draft{Title: "persisted", Content: "across sessions", Category: "personal"})
	require.NoError(t, err)

	// A second session over the same directory sees the note.
	reopened, err := jot.Open(ctx, dir)
	require.NoError(t, err)

	all := reopened.ListAll()
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, "persisted", all[0].Title)
	assert.Len(t, reopened.Categories(), 3)
}

func TestOpen_EndToEndFilterAndRemind(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store, err := jot.Open(ctx, dir, jot.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	due := now.Add(-time.Minute)
	_, err = store.Create(ctx, core.Draft{Title: "due", Category: "work", Reminder: &due})
	require.NoError(t, err)
	starred, err := store.Create(ctx, core.Draft{Title: "starred", Category: "work", Important: true})
	require.NoError(t, err)

	visible := query.Filter(store.ListAll(), "", "work")
	require.Len(t, visible, 2)
	assert.Equal(t, starred.ID, visible[0].ID, "important note leads")

	sched := jot.NewScheduler(store, notify.Disabled{}, jot.WithClock(func() time.Time { return now }))
	assert.Equal(t, 1, sched.Scan(ctx))

	for _, n := range store.ListAll() {
		assert.Nil(t, n.Reminder)
	}
}
