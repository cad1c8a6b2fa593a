package database

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store StateStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "token", "abc"))
	require.NoError(t, store.Set(ctx, "user", `{"id":1}`))
	require.NoError(t, store.Set(ctx, "token", "def"))

	value, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "def", value)

	require.NoError(t, store.Delete(ctx, "token", "user", "missing"))
	_, err = store.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseStore(t, NewRedisStore(client, "storefront:"))
}

func TestRedisStoreUsesPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "storefront:")
	require.NoError(t, store.Set(context.Background(), "lastOrder", "{}"))

	raw, err := mr.Get("storefront:lastOrder")
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
}

func TestConnectRedisFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := ConnectRedis(context.Background(), addr, "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping: ")
	assert.NotNil(t, errors.Cause(err))
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("STOREFRONT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("STOREFRONT_TEST_MONGO_URI not set")
	}

	client, err := Connect(uri)
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	db := client.Database("storefront_test")
	defer db.Drop(context.Background())

	require.NoError(t, EnsureStateIndexes(db))
	exerciseStore(t, NewMongoStore(db, "test:"))
}
