// Package e2e exercises the server end to end, over a real TCP socket,
// with the same go-redis client the teacher used for its pipelining smoke
// test — generalized here to cover every value shape and TTL behavior.
package e2e

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/marrowdb/marrow/internal/config"
	"github.com/marrowdb/marrow/internal/keyspace"
	"github.com/marrowdb/marrow/internal/logger"
	"github.com/marrowdb/marrow/internal/server"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer spins up a real listener backed by a fresh keyspace and
// returns a connected go-redis client; shutdown is registered with t.Cleanup.
func startTestServer(t *testing.T) *redis.Client {
	t.Helper()

	ks, err := keyspace.NewSharded(8)
	require.NoError(t, err)

	cfg := &config.Config{GC: config.GCConfig{Enabled: false}}
	log := logger.New("error", "console")
	engine := server.NewEngine(ks, cfg, log)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go server.Serve(listener, engine, log)

	t.Cleanup(func() {
		listener.Close() //nolint:errcheck
		engine.Shutdown()
	})

	rdb := redis.NewClient(&redis.Options{Addr: listener.Addr().String()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestStrings(t *testing.T) {
	rdb := startTestServer(t)
	ctx := context.Background()

	require.NoError(t, rdb.Set(ctx, "greeting", "hello", 0).Err())
	val, err := rdb.Get(ctx, "greeting").Result()
	require.NoError(t, err)
	assert.Equal(t, "hello", val)

	n, err := rdb.Append(ctx, "greeting", " world").Result()
	require.NoError(t, err)
	assert.EqualValues(t, len("hello world"), n)

	require.NoError(t, rdb.MSet(ctx, "a", "1", "b", "2").Err())
	vals, err := rdb.MGet(ctx, "a", "b", "missing").Result()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"1", "2", nil}, vals)

	count, err := rdb.Incr(ctx, "counter").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestLists(t *testing.T) {
	rdb := startTestServer(t)
	ctx := context.Background()

	require.NoError(t, rdb.RPush(ctx, "queue", "a", "b", "c").Err())
	out, err := rdb.LRange(ctx, "queue", 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, out)

	popped, err := rdb.LPop(ctx, "queue").Result()
	require.NoError(t, err)
	assert.Equal(t, "a", popped)
}

func TestSets(t *testing.T) {
	rdb := startTestServer(t)
	ctx := context.Background()

	require.NoError(t, rdb.SAdd(ctx, "tags", "go", "rust", "go").Err())
	card, err := rdb.SCard(ctx, "tags").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 2, card)

	isMember, err := rdb.SIsMember(ctx, "tags", "go").Result()
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestHashes(t *testing.T) {
	rdb := startTestServer(t)
	ctx := context.Background()

	require.NoError(t, rdb.HSet(ctx, "user:1", "name", "ada", "age", "30").Err())
	name, err := rdb.HGet(ctx, "user:1", "name").Result()
	require.NoError(t, err)
	assert.Equal(t, "ada", name)

	all, err := rdb.HGetAll(ctx, "user:1").Result()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "ada", "age": "30"}, all)
}

func TestTTL(t *testing.T) {
	rdb := startTestServer(t)
	ctx := context.Background()

	require.NoError(t, rdb.Set(ctx, "ephemeral", "v", 200*time.Millisecond).Err())
	ttl, err := rdb.PTTL(ctx, "ephemeral").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	time.Sleep(300 * time.Millisecond)
	_, err = rdb.Get(ctx, "ephemeral").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestPipelining(t *testing.T) {
	rdb := startTestServer(t)
	ctx := context.Background()

	const count = 1000
	pipe := rdb.Pipeline()
	for i := 0; i < count; i++ {
		pipe.Set(ctx, fmt.Sprintf("pipe_key_%d", i), fmt.Sprintf("val_%d", i), 0)
	}
	getResults := make([]*redis.StringCmd, count)
	for i := 0; i < count; i++ {
		getResults[i] = pipe.Get(ctx, fmt.Sprintf("pipe_key_%d", i))
	}

	_, err := pipe.Exec(ctx)
	require.NoError(t, err)

	for i := 0; i < count; i++ {
		val, err := getResults[i].Result()
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("val_%d", i), val)
	}
}

func TestWrongTypeError(t *testing.T) {
	rdb := startTestServer(t)
	ctx := context.Background()

	require.NoError(t, rdb.Set(ctx, "scalar", "v", 0).Err())
	err := rdb.LPush(ctx, "scalar", "x").Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WRONGTYPE")
}
