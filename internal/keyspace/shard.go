package keyspace

import (
	"strconv"
	"sync"
	"time"
)

// shard is one lock-guarded partition of the keyspace. The sharded
// implementation hashes a key to exactly one shard so that most commands
// touch a single lock, matching the "production refinement" spec.md §9
// explicitly permits over one whole-keyspace lock.
type shard struct {
	idx  int // position within Sharded.shards; gives a stable lock order
	mu   sync.RWMutex
	data map[string]*entry
}

func newShard(idx int) *shard {
	return &shard{idx: idx, data: make(map[string]*entry)}
}

// shardLess orders shards by index so any caller locking two or more
// shards can always do so smallest-index-first and never deadlock against
// a concurrent call locking the same set.
func shardLess(a, b *shard) bool { return a.idx < b.idx }

// resolveLocked returns the live entry for key, lazily deleting it first if
// its TTL has passed. Callers must already hold s.mu (read or write).
func (s *shard) resolveLocked(key string, now int64) (*entry, bool) {
	e, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if e.expiresAt != 0 && now > e.expiresAt {
		delete(s.data, key)
		return nil, false
	}
	return e, true
}

// read resolves key for a read-only access, taking the shard's read lock
// and only upgrading to a write lock when a lazy expiry actually needs to
// delete something.
func (s *shard) read(key string) (*entry, bool) {
	now := time.Now().UnixNano()

	s.mu.RLock()
	e, ok := s.data[key]
	if !ok {
		s.mu.RUnlock()
		return nil, false
	}
	if e.expiresAt == 0 || now <= e.expiresAt {
		s.mu.RUnlock()
		return e, true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(key, time.Now().UnixNano())
}

func deleteScalar(s *shard, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.resolveLocked(key, time.Now().UnixNano())
	if !ok {
		return false
	}
	delete(s.data, key)
	return true
}

// --- string (scalar) commands ---

func (s *shard) get(key string) ([]byte, error) {
	e, ok := s.read(key)
	if !ok {
		return nil, nil
	}
	if e.kind != KindString {
		return nil, ErrWrongType
	}
	return []byte(e.str()), nil
}

func (s *shard) set(key string, value []byte, opts SetOptions) (previous []byte, hadPrevious bool, applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixNano()
	e, exists := s.resolveLocked(key, now)

	if exists && e.kind != KindString {
		if opts.Get {
			return nil, false, false, ErrWrongType
		}
	} else if exists {
		previous = []byte(e.str())
		hadPrevious = true
	}

	if opts.NX && exists {
		return previous, hadPrevious, false, nil
	}
	if opts.XX && !exists {
		return previous, hadPrevious, false, nil
	}

	var expiresAt int64
	switch {
	case opts.KeepTTL && exists:
		expiresAt = e.expiresAt
	case opts.HasTTL:
		expiresAt = opts.ExpireAt.UnixNano()
	default:
		expiresAt = 0
	}

	s.data[key] = &entry{kind: KindString, value: string(value), expiresAt: expiresAt}
	return previous, hadPrevious, true, nil
}

func (s *shard) incrBy(key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixNano()
	e, exists := s.resolveLocked(key, now)

	var current int64
	if exists {
		if e.kind != KindString {
			return 0, ErrWrongType
		}
		n, err := strconv.ParseInt(e.str(), 10, 64)
		if err != nil {
			return 0, ErrNotInteger
		}
		current = n
	}

	result, overflowed := addOverflows(current, delta)
	if overflowed {
		return 0, ErrOverflow
	}

	var expiresAt int64
	if exists {
		expiresAt = e.expiresAt
	}
	s.data[key] = &entry{kind: KindString, value: strconv.FormatInt(result, 10), expiresAt: expiresAt}
	return result, nil
}

func addOverflows(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, true
	}
	return sum, false
}

func (s *shard) appendValue(key string, suffix []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixNano()
	e, exists := s.resolveLocked(key, now)

	if !exists {
		s.data[key] = &entry{kind: KindString, value: string(suffix)}
		return int64(len(suffix)), nil
	}
	if e.kind != KindString {
		return 0, ErrWrongType
	}

	newVal := e.str() + string(suffix)
	s.data[key] = &entry{kind: KindString, value: newVal, expiresAt: e.expiresAt}
	return int64(len(newVal)), nil
}

func (s *shard) strLen(key string) (int64, error) {
	e, ok := s.read(key)
	if !ok {
		return 0, nil
	}
	if e.kind != KindString {
		return 0, ErrWrongType
	}
	return int64(len(e.str())), nil
}

// --- generic key commands ---

func (s *shard) del(key string) bool {
	return deleteScalar(s, key)
}

func (s *shard) exists(key string) bool {
	_, ok := s.read(key)
	return ok
}

func (s *shard) typeOf(key string) string {
	e, ok := s.read(key)
	if !ok {
		return "none"
	}
	return e.kind.TypeName()
}

func (s *shard) expireAt(key string, at time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.resolveLocked(key, time.Now().UnixNano())
	if !ok {
		return 0
	}
	e.expiresAt = at.UnixNano()
	return 1
}

func (s *shard) ttl(key string) (time.Duration, ExpiryStatus) {
	e, ok := s.read(key)
	if !ok {
		return 0, ExpNotFound
	}
	if e.expiresAt == 0 {
		return 0, ExpNoTTL
	}
	remaining := time.Duration(e.expiresAt - time.Now().UnixNano())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, ExpActive
}

func (s *shard) persist(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.resolveLocked(key, time.Now().UnixNano())
	if !ok || e.expiresAt == 0 {
		return 0
	}
	e.expiresAt = 0
	return 1
}

// deleteExpired examines up to limit keys that carry a TTL, in Go's
// randomized map iteration order, and removes the ones whose TTL has
// passed, returning the fraction of examined keys that were expired. Keys
// without a TTL are skipped and do not count toward limit.
func (s *shard) deleteExpired(limit int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) == 0 {
		return 0
	}

	now := time.Now().UnixNano()
	checked, expired := 0, 0

	for key, e := range s.data {
		if e.expiresAt == 0 {
			continue
		}
		checked++
		if now > e.expiresAt {
			delete(s.data, key)
			expired++
		}
		if checked >= limit {
			break
		}
	}

	if checked == 0 {
		return 0
	}
	return float64(expired) / float64(checked)
}
