package buffer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnqueueAndGetBatch(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{
		BudgetID:  "b-1",
		Entity:    EntityBudget,
		Operation: OperationSave,
		Data:      []byte(`{"id":"b-1"}`),
	}))
	require.NoError(t, store.Enqueue(Item{
		BudgetID:  "b-2",
		Entity:    EntityBudget,
		Operation: OperationDelete,
	}))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEmpty(t, item.ID)
		assert.NotZero(t, item.Timestamp)
	}
}

func TestGetBatch_OrdersByPriorityThenAge(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	require.NoError(t, store.Enqueue(Item{BudgetID: "low", Priority: 4, Timestamp: base}))
	require.NoError(t, store.Enqueue(Item{BudgetID: "urgent-new", Priority: 1, Timestamp: base.Add(time.Minute)}))
	require.NoError(t, store.Enqueue(Item{BudgetID: "urgent-old", Priority: 1, Timestamp: base}))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "urgent-old", items[0].BudgetID)
	assert.Equal(t, "urgent-new", items[1].BudgetID)
	assert.Equal(t, "low", items[2].BudgetID)
}

func TestGetBatch_Limit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Enqueue(Item{BudgetID: "b", Operation: OperationSave}))
	}

	items, err := store.GetBatch(3)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Enqueue(Item{BudgetID: "b-1", Operation: OperationSave}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.Remove(items[0]))
	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestRemove_ByIDWithoutKey(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Enqueue(Item{ID: "item-1", BudgetID: "b-1"}))

	require.NoError(t, store.Remove(Item{ID: "item-1"}))
	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestRequeue_BumpsTimestamp(t *testing.T) {
	store := openTestStore(t)
	stale := time.Now().Add(-time.Hour)
	require.NoError(t, store.Enqueue(Item{ID: "item-1", BudgetID: "b-1", Timestamp: stale}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.Remove(items[0]))
	items[0].Retries++
	require.NoError(t, store.Requeue(items[0]))

	items, err = store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Retries)
	assert.True(t, items[0].Timestamp.After(stale))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestCleanup_RemovesOnlyExpired(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Enqueue(Item{ID: "old", Timestamp: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, store.Enqueue(Item{ID: "fresh", Timestamp: time.Now()}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].ID)
}

func TestClosedStore(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	assert.Error(t, store.Enqueue(Item{BudgetID: "b-1"}))
	_, err := store.GetBatch(1)
	assert.Error(t, err)
}
