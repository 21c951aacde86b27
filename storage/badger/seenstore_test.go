package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-yashaswini/job-recommender-system/core"
)

func newTestStore(t *testing.T) *SeenStore {
	t.Helper()
	store, err := Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeenScraped(t *testing.T) {
	store := newTestStore(t)
	key := core.IDFromContent("jobsnet|https://jobsnet.in/some-job/|https://apply.example/1")

	seen, err := store.SeenScraped(key)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.MarkScraped(key))

	seen, err = store.SeenScraped(key)
	require.NoError(t, err)
	assert.True(t, seen)

	other, err := store.SeenScraped(core.IDFromContent("different"))
	require.NoError(t, err)
	assert.False(t, other)
}

func TestNotifiedLedger(t *testing.T) {
	store := newTestStore(t)

	notified, err := store.Notified("dev@example.com", 42)
	require.NoError(t, err)
	assert.False(t, notified)

	require.NoError(t, store.MarkNotified("dev@example.com", 42))

	notified, err = store.Notified("dev@example.com", 42)
	require.NoError(t, err)
	assert.True(t, notified)

	t.Run("per recipient", func(t *testing.T) {
		notified, err := store.Notified("other@example.com", 42)
		require.NoError(t, err)
		assert.False(t, notified)
	})

	t.Run("per job", func(t *testing.T) {
		notified, err := store.Notified("dev@example.com", 43)
		require.NoError(t, err)
		assert.False(t, notified)
	})
}
