package audit

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestServiceStampsTimestamp(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, testLogger())

	svc.Emit(context.Background(), Event{Action: ActionCreate, ResourceType: "province"})

	events, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestMemoryStoreListNewestFirstWithFilters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(ctx, Event{Timestamp: base, Action: ActionCreate, ResourceType: "province", ResourceID: "19"}))
	require.NoError(t, store.Append(ctx, Event{Timestamp: base.Add(time.Minute), Action: ActionUpdate, ResourceType: "province", ResourceID: "19"}))
	require.NoError(t, store.Append(ctx, Event{Timestamp: base.Add(2 * time.Minute), Action: ActionCreate, ResourceType: "school", ResourceID: "9"}))

	events, err := store.List(ctx, Filter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "school", events[0].ResourceType)

	events, err = store.List(ctx, Filter{Limit: 10, Action: ActionCreate})
	require.NoError(t, err)
	require.Len(t, events, 2)

	events, err = store.List(ctx, Filter{Limit: 10, ResourceType: "province", Action: ActionUpdate})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "19", events[0].ResourceID)

	events, err = store.List(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audit.log")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{
		Timestamp:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Action:       ActionDelete,
		ResourceType: "market",
		ResourceID:   "7",
		Email:        "admin@angodata.ao",
	}))
	require.NoError(t, store.Append(ctx, Event{
		Timestamp:    time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC),
		Action:       ActionCreate,
		ResourceType: "market",
		ResourceID:   "8",
	}))

	events, err := store.List(ctx, Filter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "8", events[0].ResourceID)
	assert.Equal(t, "admin@angodata.ao", events[1].Email)
}

func TestFileStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{Action: ActionLogin, ResourceType: "user"}))
	require.NoError(t, os.WriteFile(path, append(mustRead(t, path), []byte("{not json\n")...), 0o644))
	require.NoError(t, store.Append(ctx, Event{Action: ActionRegister, ResourceType: "user"}))

	events, err := store.List(ctx, Filter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
