package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/marquee/internal/database"
)

func newTestService(t *testing.T, limit int) *Service {
	t.Helper()

	db, err := database.Open(":memory:", 1, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	svc := NewService(db, limit)

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func queries(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Query
	}
	return out
}

func TestService_RecordAndRecent(t *testing.T) {
	svc := newTestService(t, 10)

	require.NoError(t, svc.Record("batman"))
	require.NoError(t, svc.Record("  alien "))
	require.NoError(t, svc.Record("dune"))

	entries, err := svc.Recent(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"dune", "alien", "batman"}, queries(entries))
}

func TestService_RecordRepeatMovesToFront(t *testing.T) {
	svc := newTestService(t, 10)

	require.NoError(t, svc.Record("batman"))
	require.NoError(t, svc.Record("alien"))
	require.NoError(t, svc.Record("batman"))

	entries, err := svc.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "batman", entries[0].Query)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, 1, entries[1].Count)
}

func TestService_RecordIgnoresBlank(t *testing.T) {
	svc := newTestService(t, 10)

	require.NoError(t, svc.Record("   "))

	entries, err := svc.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_Prune(t *testing.T) {
	svc := newTestService(t, 2)

	for _, q := range []string{"one", "two", "three"} {
		require.NoError(t, svc.Record(q))
	}

	entries, err := svc.Recent(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "two"}, queries(entries))
}

func TestService_RecentLimit(t *testing.T) {
	svc := newTestService(t, 0)

	for _, q := range []string{"a", "b", "c", "d"} {
		require.NoError(t, svc.Record(q))
	}

	entries, err := svc.Recent(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c"}, queries(entries))

	all, err := svc.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestService_DeleteAndClear(t *testing.T) {
	svc := newTestService(t, 10)

	for _, q := range []string{"a", "b", "c"} {
		require.NoError(t, svc.Record(q))
	}

	require.NoError(t, svc.Delete("b"))
	entries, err := svc.Recent(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, queries(entries))

	n, err := svc.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	entries, err = svc.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_NilDatabase(t *testing.T) {
	svc := NewService(nil, 10)

	assert.ErrorIs(t, svc.Record("x"), ErrNoDatabase)
	_, err := svc.Recent(0)
	assert.ErrorIs(t, err, ErrNoDatabase)
	_, err = svc.Clear()
	assert.ErrorIs(t, err, ErrNoDatabase)
}
