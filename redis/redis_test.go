package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionRoundTrip(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	session := &models.Session{ID: "abc", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.SaveSession(ctx, session))

	assert.True(t, mr.Exists("session:abc"))
	ttl := mr.TTL("session:abc")
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "ttl %s", ttl)

	got, err := s.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)

	require.NoError(t, s.DeleteSession(ctx, "abc"))
	_, err = s.GetSession(ctx, "abc")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestSessionExpiresWithKey(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, &models.Session{ID: "short", UserID: "u", ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	_, err := s.GetSession(ctx, "short")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestSaveExpiredSessionIsNotStored(t *testing.T) {
	s, mr := newTestStore(t)

	require.NoError(t, s.SaveSession(context.Background(), &models.Session{ID: "old", UserID: "u", ExpiresAt: time.Now().Add(-time.Minute)}))
	assert.False(t, mr.Exists("session:old"))
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	client.Close()

	_, err = Connect(context.Background(), "not a url")
	assert.Error(t, err)
}
