package keyspace

import (
	"errors"
	"hash/fnv"
	"math/bits"
	"sort"
	"sync"
	"time"
)

// Sharded is a thread-safe Keyspace partitioned into a power-of-two number
// of lock-guarded segments to reduce contention, the way the teacher
// lineage's ShardedMapStorage split a string/hash map across shards. Every
// single-key command hashes to one shard and pays for exactly one lock;
// multi-key commands (KEYS, DBSIZE, FLUSHDB, MSET, RENAME across shards)
// are documented best-effort atomic per spec.md §9: each touches every
// shard it needs under that shard's own lock, never under one keyspace-
// wide lock.
type Sharded struct {
	shards    []*shard
	shardMask uint32
}

// NewSharded creates a keyspace with the requested number of shards, which
// must be a power of two no greater than 64.
func NewSharded(requestedShards uint) (*Sharded, error) {
	if bits.OnesCount(requestedShards) != 1 {
		return nil, errors.New("keyspace: shard count must be a power of 2")
	}
	if requestedShards > 64 {
		return nil, errors.New("keyspace: shard count must be <= 64")
	}

	ks := &Sharded{
		shards:    make([]*shard, requestedShards),
		shardMask: uint32(requestedShards - 1),
	}
	for i := range ks.shards {
		ks.shards[i] = newShard(i)
	}
	return ks, nil
}

func (ks *Sharded) indexOf(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key)) //nolint:errcheck
	return h.Sum32() & ks.shardMask
}

func (ks *Sharded) shardFor(key string) *shard {
	return ks.shards[ks.indexOf(key)]
}

// --- string (scalar) commands ---

func (ks *Sharded) Get(key string) ([]byte, error) {
	return ks.shardFor(key).get(key)
}

func (ks *Sharded) Set(key string, value []byte, opts SetOptions) ([]byte, bool, bool, error) {
	return ks.shardFor(key).set(key, value, opts)
}

func (ks *Sharded) MSet(pairs map[string]string) {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}

	touched := ks.dedupedShardsFor(keys)
	for _, sh := range touched {
		sh.mu.Lock()
	}
	for key, value := range pairs {
		sh := ks.shardFor(key)
		sh.data[key] = &entry{kind: KindString, value: value}
	}
	for i := len(touched) - 1; i >= 0; i-- {
		touched[i].mu.Unlock()
	}
}

func (ks *Sharded) MGet(keys ...string) [][]byte {
	out := make([][]byte, len(keys))
	for i, key := range keys {
		// WRONGTYPE on an individual key degrades to nil for MGET's
		// purposes, matching the wire protocol's "array, null per miss"
		// shape rather than failing the whole call.
		v, err := ks.Get(key)
		if err == nil {
			out[i] = v
		}
	}
	return out
}

func (ks *Sharded) IncrBy(key string, delta int64) (int64, error) {
	return ks.shardFor(key).incrBy(key, delta)
}

func (ks *Sharded) Append(key string, suffix []byte) (int64, error) {
	return ks.shardFor(key).appendValue(key, suffix)
}

func (ks *Sharded) StrLen(key string) (int64, error) {
	return ks.shardFor(key).strLen(key)
}

// --- generic key commands ---

func (ks *Sharded) Del(keys ...string) int64 {
	var n int64
	for _, key := range keys {
		if ks.shardFor(key).del(key) {
			n++
		}
	}
	return n
}

func (ks *Sharded) Exists(keys ...string) int64 {
	var n int64
	for _, key := range keys {
		if ks.shardFor(key).exists(key) {
			n++
		}
	}
	return n
}

func (ks *Sharded) TypeOf(key string) string {
	return ks.shardFor(key).typeOf(key)
}

func (ks *Sharded) Rename(src, dst string) error {
	a, b := ks.shardFor(src), ks.shardFor(dst)
	first, second := orderShards(a, b)
	first.mu.Lock()
	if second != first {
		second.mu.Lock()
	}
	defer func() {
		if second != first {
			second.mu.Unlock()
		}
		first.mu.Unlock()
	}()

	now := time.Now().UnixNano()
	e, ok := a.resolveLocked(src, now)
	if !ok {
		return ErrNoSuchKey
	}
	delete(a.data, src)
	b.data[dst] = e
	return nil
}

func (ks *Sharded) RenameNX(src, dst string) (bool, error) {
	a, b := ks.shardFor(src), ks.shardFor(dst)
	first, second := orderShards(a, b)
	first.mu.Lock()
	if second != first {
		second.mu.Lock()
	}
	defer func() {
		if second != first {
			second.mu.Unlock()
		}
		first.mu.Unlock()
	}()

	now := time.Now().UnixNano()
	if _, destExists := b.resolveLocked(dst, now); destExists {
		return false, nil
	}
	e, ok := a.resolveLocked(src, now)
	if !ok {
		return false, ErrNoSuchKey
	}
	delete(a.data, src)
	b.data[dst] = e
	return true, nil
}

// orderShards returns a and b in a stable order (by slice position) so two
// concurrent renames touching the same pair of shards always lock them in
// the same order and cannot deadlock.
func orderShards(a, b *shard) (*shard, *shard) {
	if a == b {
		return a, b
	}
	if shardLess(a, b) {
		return a, b
	}
	return b, a
}

func (ks *Sharded) Keys(pattern string) []string {
	var out []string
	for _, sh := range ks.shards {
		sh.mu.RLock()
		now := time.Now().UnixNano()
		for key, e := range sh.data {
			if e.expiresAt != 0 && now > e.expiresAt {
				continue
			}
			if globMatch(pattern, key) {
				out = append(out, key)
			}
		}
		sh.mu.RUnlock()
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func (ks *Sharded) DBSize() int64 {
	var n int64
	now := time.Now().UnixNano()
	for _, sh := range ks.shards {
		sh.mu.RLock()
		for _, e := range sh.data {
			if e.expiresAt == 0 || now <= e.expiresAt {
				n++
			}
		}
		sh.mu.RUnlock()
	}
	return n
}

func (ks *Sharded) FlushDB() {
	for _, sh := range ks.shards {
		sh.mu.Lock()
		sh.data = make(map[string]*entry)
		sh.mu.Unlock()
	}
}

func (ks *Sharded) Expire(key string, ttl time.Duration) int64 {
	return ks.ExpireAt(key, time.Now().Add(ttl))
}

func (ks *Sharded) PExpire(key string, ttl time.Duration) int64 {
	return ks.ExpireAt(key, time.Now().Add(ttl))
}

func (ks *Sharded) ExpireAt(key string, at time.Time) int64 {
	return ks.shardFor(key).expireAt(key, at)
}

func (ks *Sharded) TTL(key string) (time.Duration, ExpiryStatus) {
	return ks.shardFor(key).ttl(key)
}

func (ks *Sharded) Persist(key string) int64 {
	return ks.shardFor(key).persist(key)
}

// --- list commands ---

func (ks *Sharded) LPush(key string, values ...string) (int64, error) {
	return ks.shardFor(key).lpush(key, values)
}
func (ks *Sharded) RPush(key string, values ...string) (int64, error) {
	return ks.shardFor(key).rpush(key, values)
}
func (ks *Sharded) LPop(key string) ([]byte, bool, error) { return ks.shardFor(key).lpop(key) }
func (ks *Sharded) RPop(key string) ([]byte, bool, error) { return ks.shardFor(key).rpop(key) }
func (ks *Sharded) LLen(key string) (int64, error)        { return ks.shardFor(key).llen(key) }
func (ks *Sharded) LIndex(key string, index int64) ([]byte, bool, error) {
	return ks.shardFor(key).lindex(key, index)
}
func (ks *Sharded) LRange(key string, start, stop int64) ([][]byte, error) {
	return ks.shardFor(key).lrange(key, start, stop)
}
func (ks *Sharded) LSet(key string, index int64, value []byte) error {
	return ks.shardFor(key).lset(key, index, value)
}

// --- set commands ---

func (ks *Sharded) SAdd(key string, members ...string) (int64, error) {
	return ks.shardFor(key).sadd(key, members)
}
func (ks *Sharded) SRem(key string, members ...string) (int64, error) {
	return ks.shardFor(key).srem(key, members)
}
func (ks *Sharded) SMembers(key string) ([]string, error) { return ks.shardFor(key).smembers(key) }
func (ks *Sharded) SIsMember(key, member string) (bool, error) {
	return ks.shardFor(key).sismember(key, member)
}
func (ks *Sharded) SCard(key string) (int64, error) { return ks.shardFor(key).scard(key) }

// --- hash commands ---

func (ks *Sharded) HSet(key string, pairs map[string]string) (int64, error) {
	return ks.shardFor(key).hset(key, pairs)
}
func (ks *Sharded) HGet(key, field string) ([]byte, bool, error) {
	return ks.shardFor(key).hget(key, field)
}
func (ks *Sharded) HMGet(key string, fields ...string) ([][]byte, error) {
	return ks.shardFor(key).hmget(key, fields)
}
func (ks *Sharded) HGetAll(key string) ([]string, error) { return ks.shardFor(key).hgetall(key) }
func (ks *Sharded) HDel(key string, fields ...string) (int64, error) {
	return ks.shardFor(key).hdel(key, fields)
}
func (ks *Sharded) HExists(key, field string) (bool, error) {
	return ks.shardFor(key).hexists(key, field)
}
func (ks *Sharded) HLen(key string) (int64, error)    { return ks.shardFor(key).hlen(key) }
func (ks *Sharded) HKeys(key string) ([]string, error) { return ks.shardFor(key).hkeys(key) }
func (ks *Sharded) HVals(key string) ([]string, error) { return ks.shardFor(key).hvals(key) }
func (ks *Sharded) HIncrBy(key, field string, delta int64) (int64, error) {
	return ks.shardFor(key).hincrby(key, field, delta)
}

// DeleteExpired fans the active-expiration sweep out across every shard
// concurrently and returns the average expired fraction, directly adapted
// from the teacher's ShardedMapStorage.DeleteExpired.
func (ks *Sharded) DeleteExpired(limit int) float64 {
	var wg sync.WaitGroup
	ratios := make([]float64, len(ks.shards))

	wg.Add(len(ks.shards))
	for i, sh := range ks.shards {
		go func(i int, sh *shard) {
			defer wg.Done()
			ratios[i] = sh.deleteExpired(limit)
		}(i, sh)
	}
	wg.Wait()

	var total float64
	for _, r := range ratios {
		total += r
	}
	return total / float64(len(ks.shards))
}

// dedupedShardsFor returns the distinct shards touched by keys, sorted by
// their position in ks.shards so callers can lock them in a consistent
// order and avoid deadlocking against a concurrent multi-key call.
func (ks *Sharded) dedupedShardsFor(keys []string) []*shard {
	seen := make(map[*shard]struct{})
	var out []*shard
	for _, k := range keys {
		sh := ks.shardFor(k)
		if _, ok := seen[sh]; !ok {
			seen[sh] = struct{}{}
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return shardLess(out[i], out[j]) })
	return out
}
