package keyspace

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"
)

func newTestKeyspace(t *testing.T, shards uint) *Sharded {
	t.Helper()
	ks, err := NewSharded(shards)
	if err != nil {
		t.Fatalf("NewSharded: %v", err)
	}
	return ks
}

func TestNewSharded_RejectsNonPowerOfTwo(t *testing.T) {
	if _, err := NewSharded(3); err == nil {
		t.Error("expected error for non-power-of-2 shard count")
	}
	if _, err := NewSharded(128); err == nil {
		t.Error("expected error for shard count above 64")
	}
	if _, err := NewSharded(16); err != nil {
		t.Errorf("unexpected error for valid shard count: %v", err)
	}
}

func TestStringGetSet(t *testing.T) {
	ks := newTestKeyspace(t, 4)

	if _, hadPrev, applied, err := ks.Set("k", []byte("v1"), SetOptions{}); err != nil || !applied || hadPrev {
		t.Fatalf("unexpected Set result: hadPrev=%v applied=%v err=%v", hadPrev, applied, err)
	}

	v, err := ks.Get("k")
	if err != nil || string(v) != "v1" {
		t.Fatalf("Get = %q, %v", v, err)
	}

	prev, hadPrev, applied, err := ks.Set("k", []byte("v2"), SetOptions{Get: true})
	if err != nil || !applied || !hadPrev || string(prev) != "v1" {
		t.Fatalf("Set GET result: prev=%q hadPrev=%v applied=%v err=%v", prev, hadPrev, applied, err)
	}
}

func TestSetNXAndXX(t *testing.T) {
	ks := newTestKeyspace(t, 1)

	_, _, applied, _ := ks.Set("only-once", []byte("a"), SetOptions{NX: true})
	if !applied {
		t.Fatal("first NX set should apply")
	}
	_, _, applied, _ = ks.Set("only-once", []byte("b"), SetOptions{NX: true})
	if applied {
		t.Fatal("second NX set should not apply")
	}

	_, _, applied, _ = ks.Set("missing", []byte("c"), SetOptions{XX: true})
	if applied {
		t.Fatal("XX set on missing key should not apply")
	}
}

func TestWrongTypeErrors(t *testing.T) {
	ks := newTestKeyspace(t, 1)
	ks.LPush("list", "a")

	if _, err := ks.Get("list"); !errors.Is(err, ErrWrongType) {
		t.Errorf("expected ErrWrongType, got %v", err)
	}
	if _, err := ks.IncrBy("list", 1); !errors.Is(err, ErrWrongType) {
		t.Errorf("expected ErrWrongType, got %v", err)
	}
}

func TestIncrByOverflow(t *testing.T) {
	ks := newTestKeyspace(t, 1)
	ks.Set("n", []byte(fmt.Sprintf("%d", int64(1)<<62)), SetOptions{})

	if _, err := ks.IncrBy("n", 1<<62); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestListOps(t *testing.T) {
	ks := newTestKeyspace(t, 1)

	ks.LPush("l", "a", "b", "c") // head = c, b, a
	vals, _ := ks.LRange("l", 0, -1)
	got := joinBytes(vals)
	if got != "c,b,a" {
		t.Errorf("LPush order = %s, want c,b,a", got)
	}

	ks.RPush("l", "z")
	v, ok, _ := ks.RPop("l")
	if !ok || string(v) != "z" {
		t.Errorf("RPop = %q, %v", v, ok)
	}
}

func TestListEmptyDeletesKey(t *testing.T) {
	ks := newTestKeyspace(t, 1)
	ks.LPush("l", "only")
	ks.LPop("l")
	if ks.Exists("l") != 0 {
		t.Error("list should be deleted once empty")
	}
}

func TestSetOps(t *testing.T) {
	ks := newTestKeyspace(t, 1)

	n, _ := ks.SAdd("s", "a", "b", "a")
	if n != 2 {
		t.Errorf("SAdd returned %d new members, want 2", n)
	}
	if card, _ := ks.SCard("s"); card != 2 {
		t.Errorf("SCard = %d, want 2", card)
	}

	removed, _ := ks.SRem("s", "a", "nope")
	if removed != 1 {
		t.Errorf("SRem removed %d, want 1", removed)
	}
}

func TestHashOps(t *testing.T) {
	ks := newTestKeyspace(t, 1)

	n, _ := ks.HSet("h", map[string]string{"f1": "v1", "f2": "v2"})
	if n != 2 {
		t.Errorf("HSet created %d fields, want 2", n)
	}

	n, _ = ks.HSet("h", map[string]string{"f1": "updated"})
	if n != 0 {
		t.Errorf("HSet on existing field reported %d new fields, want 0", n)
	}

	v, ok, _ := ks.HGet("h", "f1")
	if !ok || string(v) != "updated" {
		t.Errorf("HGet = %q, %v", v, ok)
	}

	got, _ := ks.HIncrBy("h", "counter", 5)
	if got != 5 {
		t.Errorf("HIncrBy = %d, want 5", got)
	}
}

func TestTTLAndExpiry(t *testing.T) {
	ks := newTestKeyspace(t, 1)

	ks.Set("k", []byte("v"), SetOptions{})
	if _, status := ks.TTL("k"); status != ExpNoTTL {
		t.Errorf("expected ExpNoTTL, got %v", status)
	}

	ks.ExpireAt("k", time.Now().Add(10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	if v, _ := ks.Get("k"); v != nil {
		t.Error("expected key to have lazily expired")
	}
	if _, status := ks.TTL("missing"); status != ExpNotFound {
		t.Errorf("expected ExpNotFound, got %v", status)
	}
}

func TestDeleteExpiredSweep(t *testing.T) {
	ks := newTestKeyspace(t, 4)

	for i := 0; i < 20; i++ {
		ks.Set(fmt.Sprintf("k%d", i), []byte("v"), SetOptions{HasTTL: true, ExpireAt: time.Now().Add(-time.Second)})
	}

	ratio := ks.DeleteExpired(20)
	if ratio == 0 {
		t.Error("expected a nonzero expired ratio after inserting only-expired keys")
	}
	if ks.DBSize() != 0 {
		t.Errorf("DBSize = %d after sweep, want 0", ks.DBSize())
	}
}

func TestRenameAcrossShards(t *testing.T) {
	ks := newTestKeyspace(t, 16)

	ks.Set("src", []byte("v"), SetOptions{})
	if err := ks.Rename("src", "dst"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if v, _ := ks.Get("dst"); string(v) != "v" {
		t.Errorf("Get(dst) = %q", v)
	}
	if ks.Exists("src") != 0 {
		t.Error("src should no longer exist after rename")
	}
}

func TestMSetMGet(t *testing.T) {
	ks := newTestKeyspace(t, 8)

	ks.MSet(map[string]string{"a": "1", "b": "2", "c": "3"})
	vals := ks.MGet("a", "missing", "c")
	if string(vals[0]) != "1" || vals[1] != nil || string(vals[2]) != "3" {
		t.Errorf("MGet = %v", vals)
	}
}

func TestKeysGlob(t *testing.T) {
	ks := newTestKeyspace(t, 8)
	ks.Set("user:1", []byte("v"), SetOptions{})
	ks.Set("user:2", []byte("v"), SetOptions{})
	ks.Set("order:1", []byte("v"), SetOptions{})

	matches := ks.Keys("user:*")
	if len(matches) != 2 {
		t.Errorf("Keys(user:*) = %v, want 2 matches", matches)
	}
}

func joinBytes(vals [][]byte) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += ","
		}
		out += string(v)
	}
	return out
}

// TestShardedConcurrency hammers a small shard count with mixed string and
// set operations across many goroutines, the way the teacher's
// MapStorage concurrency test does for its single map.
func TestShardedConcurrency(t *testing.T) {
	ks := newTestKeyspace(t, 16)
	const workers = 50
	const opsPerWorker = 2000

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

			for j := 0; j < opsPerWorker; j++ {
				key := fmt.Sprintf("key-%d", r.Intn(50))
				switch r.Intn(5) {
				case 0:
					ks.Set(key, []byte(fmt.Sprintf("val-%d", j)), SetOptions{})
				case 1:
					ks.Get(key)
				case 2:
					ks.Del(key)
				case 3:
					ks.SAdd(key, fmt.Sprintf("m-%d", j))
				case 4:
					ks.IncrBy(key, 1)
				}
			}
		}(i)
	}

	wg.Wait()
}

func FuzzKeyspaceSetGet(f *testing.F) {
	ks, err := NewSharded(4)
	if err != nil {
		f.Fatal(err)
	}

	f.Add("key1", "val1")
	f.Add("special", "!@#$%^&*()")

	f.Fuzz(func(t *testing.T, key string, val string) {
		ks.Set(key, []byte(val), SetOptions{})

		v, err := ks.Get(key)
		if err != nil || string(v) != val {
			t.Errorf("Get after Set: key=%q val=%q got=%q err=%v", key, val, v, err)
		}
	})
}
