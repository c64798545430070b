package memory

import (
	"context"
	"testing"
	"time"

	"euchre-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTripsThroughJSON(t *testing.T) {
	store := New()
	ctx := context.Background()

	room := domain.NewRoom("table-1", "tok", domain.DifficultyEasy)
	room.Players = append(room.Players, &domain.Player{ID: "p0", Name: "Ada", SeatIndex: 0})
	room.HasPassword = true
	room.PasswordHash = "bcrypt-hash-placeholder"

	require.NoError(t, store.Save(ctx, room))

	loaded, err := store.Load(ctx, "table-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "table-1", loaded.Name)
	assert.Equal(t, domain.DifficultyEasy, loaded.BotDifficulty)
	require.Len(t, loaded.Players, 1)
	assert.Equal(t, "Ada", loaded.Players[0].Name)

	// a cold restart must not wipe the creator token or password hash:
	// losing either locks the room's creator out and makes a
	// password-protected room unjoinable forever.
	assert.Equal(t, "tok", loaded.CreatorToken)
	assert.Equal(t, "bcrypt-hash-placeholder", loaded.PasswordHash)

	// mutating the loaded copy must never leak back into the store.
	loaded.Players[0].Name = "mutated"
	reloaded, err := store.Load(ctx, "table-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", reloaded.Players[0].Name)
}

func TestLoadMissingRoomReturnsNilWithoutError(t *testing.T) {
	store := New()
	room, err := store.Load(context.Background(), "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, room)
}

func TestDeleteRemovesTheRoom(t *testing.T) {
	store := New()
	ctx := context.Background()
	room := domain.NewRoom("table-2", "tok", domain.DifficultyMedium)
	require.NoError(t, store.Save(ctx, room))

	require.NoError(t, store.Delete(ctx, "table-2"))

	loaded, err := store.Load(ctx, "table-2")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestListReturnsEveryStoredRoomName(t *testing.T) {
	store := New()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.NewRoom("a", "tok", domain.DifficultyMedium)))
	require.NoError(t, store.Save(ctx, domain.NewRoom("b", "tok", domain.DifficultyMedium)))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestReapExpiredDeletesOnlyRoomsPastTTL(t *testing.T) {
	store := New()
	ctx := context.Background()

	fresh := domain.NewRoom("fresh", "tok", domain.DifficultyMedium)
	stale := domain.NewRoom("stale", "tok", domain.DifficultyMedium)
	stale.CreatedAt = time.Now().Add(-2 * time.Hour)

	require.NoError(t, store.Save(ctx, fresh))
	require.NoError(t, store.Save(ctx, stale))

	expired, err := store.ReapExpired(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale"}, expired)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, names)
}
