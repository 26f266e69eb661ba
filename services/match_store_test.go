package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rps-frame-server/models"
	"rps-frame-server/services"
)

func TestMatchStoreCreateAndGet(t *testing.T) {
	store := services.NewMatchStore(nil)

	record := store.Create(100)
	require.NotEmpty(t, record.ID)
	require.Equal(t, int64(100), record.InitiatorFID)
	require.False(t, record.HasOpponent())
	require.Equal(t, models.MoveNone, record.InitiatorMove)
	require.Equal(t, 1, store.Len())

	got, ok := store.Get(record.ID)
	require.True(t, ok)
	require.Equal(t, record.ID, got.ID)

	_, ok = store.Get("missing")
	require.False(t, ok)
}

func TestMatchStoreIDsAreUnique(t *testing.T) {
	store := services.NewMatchStore(nil)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		record := store.Create(int64(i))
		require.False(t, seen[record.ID])
		seen[record.ID] = true
	}
	require.Equal(t, 100, store.Len())
}

func TestMatchStoreUpdateFirstWriteWins(t *testing.T) {
	store := services.NewMatchStore(nil)
	record := store.Create(100)

	recordMove := func(move models.Move) models.MatchRecord {
		updated, ok := store.Update(record.ID, func(m *models.MatchRecord) bool {
			if m.InitiatorMove == models.MoveNone {
				m.InitiatorMove = move
			}
			return false
		})
		require.True(t, ok)
		return updated
	}

	require.Equal(t, models.MoveRock, recordMove(models.MoveRock).InitiatorMove)

	// A later tap with a different button changes nothing.
	require.Equal(t, models.MoveRock, recordMove(models.MovePaper).InitiatorMove)
}

func TestMatchStoreUpdateMissing(t *testing.T) {
	store := services.NewMatchStore(nil)

	called := false
	_, ok := store.Update("missing", func(m *models.MatchRecord) bool {
		called = true
		return false
	})
	require.False(t, ok)
	require.False(t, called)
}

func TestMatchStoreUpdateRemoves(t *testing.T) {
	store := services.NewMatchStore(nil)
	record := store.Create(100)

	snapshot, ok := store.Update(record.ID, func(m *models.MatchRecord) bool {
		m.InitiatorMove = models.MoveRock
		return true
	})
	require.True(t, ok)
	require.Equal(t, models.MoveRock, snapshot.InitiatorMove)

	// Removed in the same critical section: no later caller sees it.
	_, ok = store.Get(record.ID)
	require.False(t, ok)
	require.Equal(t, 0, store.Len())

	_, ok = store.Update(record.ID, func(m *models.MatchRecord) bool { return false })
	require.False(t, ok)
}

func TestMatchStoreRemove(t *testing.T) {
	store := services.NewMatchStore(nil)
	record := store.Create(100)

	store.Remove(record.ID)
	require.Equal(t, 0, store.Len())

	// Removing an absent id is a no-op.
	store.Remove(record.ID)
	require.Equal(t, 0, store.Len())
}

// Exactly one of many racing identities may claim the opponent seat.
func TestMatchStoreConcurrentJoin(t *testing.T) {
	store := services.NewMatchStore(nil)
	record := store.Create(1)

	const contenders = 32
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		fid := int64(i + 2)
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update(record.ID, func(m *models.MatchRecord) bool {
				if !m.HasOpponent() && m.InitiatorFID != fid {
					m.OpponentFID = &fid
				}
				return false
			})
		}()
	}
	wg.Wait()

	got, ok := store.Get(record.ID)
	require.True(t, ok)
	require.True(t, got.HasOpponent())
	require.GreaterOrEqual(t, *got.OpponentFID, int64(2))
	require.LessOrEqual(t, *got.OpponentFID, int64(contenders+1))
}

func TestMatchStoreSweepExpired(t *testing.T) {
	store := services.NewMatchStore(nil)
	stale := store.Create(100)
	fresh := store.Create(200)

	// Backdate one lobby past the TTL.
	_, ok := store.Update(stale.ID, func(m *models.MatchRecord) bool {
		m.CreatedAt = time.Now().Add(-2 * time.Hour)
		return false
	})
	require.True(t, ok)

	require.Equal(t, 1, store.SweepExpired(time.Hour))

	_, ok = store.Get(stale.ID)
	require.False(t, ok)
	_, ok = store.Get(fresh.ID)
	require.True(t, ok)

	require.Equal(t, 0, store.SweepExpired(time.Hour))
}
