package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/king-of-montenegro/internal/config"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	client, _ := newTestClient(t)
	return NewRedisStore(client)
}

func TestRedisStore_SaveLoadDeleteMatch(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	ctx := context.Background()

	rec := &MatchRecord{
		MatchID:    "m-1",
		Winner:     1,
		Reason:     "victory",
		Rounds:     17,
		FinishedAt: time.Now().Unix(),
	}
	rec.Players[0] = MatchPlayerData{Name: "Milena", DuelsWon: 7}
	rec.Players[1] = MatchPlayerData{Name: "Nikola", DuelsWon: 10, WarsWon: 1, ArmyCards: 18}

	require.NoError(t, store.SaveMatch(ctx, rec))

	loaded, err := store.LoadMatch(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)

	require.NoError(t, store.DeleteMatch(ctx, "m-1"))

	loaded, err = store.LoadMatch(ctx, "m-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	recent, err := store.RecentMatches(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRedisStore_SaveNil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, newTestRedisStore(t).SaveMatch(context.Background(), nil))
}

func TestRedisStore_RecentMatches(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < recentMatchLimit+5; i++ {
		require.NoError(t, store.SaveMatch(ctx, &MatchRecord{MatchID: fmt.Sprintf("m-%d", i), Winner: -1}))
	}

	recent, err := store.RecentMatches(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "m-104", recent[0].MatchID, "newest first")
	assert.Equal(t, "m-102", recent[2].MatchID)

	all, err := store.RecentMatches(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, all, recentMatchLimit, "list is capped")

	none, err := store.RecentMatches(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRedisStore_Expiration(t *testing.T) {
	t.Parallel()

	client, mr := newTestClient(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	require.NoError(t, store.SaveMatch(ctx, &MatchRecord{MatchID: "old"}))
	assert.Equal(t, matchExpiration, mr.TTL(matchKeyPrefix+"old"))

	mr.FastForward(matchExpiration + time.Second)

	recent, err := store.RecentMatches(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent, "expired records are skipped")
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	_, mr := newTestClient(t)

	client, err := NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	mr.RequireAuth("secret")
	_, err = NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr(), Password: "wrong"})
	assert.Error(t, err)
}
