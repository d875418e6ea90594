package keyspace

import (
	"strconv"
	"time"
)

// hset sets the given field/value pairs, returning the count of fields
// that were newly created (updating an existing field contributes 0).
func (s *shard) hset(key string, pairs map[string]string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if exists && e.kind != KindHash {
		return 0, ErrWrongType
	}

	var hash map[string]string
	var expiresAt int64
	if exists {
		hash = e.hash()
		expiresAt = e.expiresAt
	} else {
		hash = make(map[string]string, len(pairs))
	}

	var created int64
	for field, value := range pairs {
		if _, had := hash[field]; !had {
			created++
		}
		hash[field] = value
	}

	s.data[key] = &entry{kind: KindHash, value: hash, expiresAt: expiresAt}
	return created, nil
}

func (s *shard) hget(key, field string) ([]byte, bool, error) {
	e, ok := s.read(key)
	if !ok {
		return nil, false, nil
	}
	if e.kind != KindHash {
		return nil, false, ErrWrongType
	}
	v, ok := e.hash()[field]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// hmget reads every requested field under a single lock acquisition, so a
// concurrent HSET on the same key cannot interleave between fields and
// produce a torn read. An expired key reads as absent here; its removal is
// left to the next write or the active-expiration sweep.
func (s *shard) hmget(key string, fields []string) ([][]byte, error) {
	out := make([][]byte, len(fields))
	now := time.Now().UnixNano()

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || (e.expiresAt != 0 && now > e.expiresAt) {
		return out, nil
	}
	if e.kind != KindHash {
		return nil, ErrWrongType
	}
	hash := e.hash()
	for i, f := range fields {
		if v, had := hash[f]; had {
			out[i] = []byte(v)
		}
	}
	return out, nil
}

// hgetall copies every field/value pair under a single read-lock
// acquisition, the same way hmget does.
func (s *shard) hgetall(key string) ([]string, error) {
	now := time.Now().UnixNano()

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || (e.expiresAt != 0 && now > e.expiresAt) {
		return nil, nil
	}
	if e.kind != KindHash {
		return nil, ErrWrongType
	}

	hash := e.hash()
	out := make([]string, 0, len(hash)*2)
	for field, value := range hash {
		out = append(out, field, value)
	}
	return out, nil
}

func (s *shard) hdel(key string, fields []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if !exists {
		return 0, nil
	}
	if e.kind != KindHash {
		return 0, ErrWrongType
	}

	hash := e.hash()
	var removed int64
	for _, f := range fields {
		if _, ok := hash[f]; ok {
			delete(hash, f)
			removed++
		}
	}

	if len(hash) == 0 {
		delete(s.data, key)
	}
	return removed, nil
}

func (s *shard) hexists(key, field string) (bool, error) {
	e, ok := s.read(key)
	if !ok {
		return false, nil
	}
	if e.kind != KindHash {
		return false, ErrWrongType
	}
	_, has := e.hash()[field]
	return has, nil
}

func (s *shard) hlen(key string) (int64, error) {
	e, ok := s.read(key)
	if !ok {
		return 0, nil
	}
	if e.kind != KindHash {
		return 0, ErrWrongType
	}
	return int64(len(e.hash())), nil
}

func (s *shard) hkeys(key string) ([]string, error) {
	e, ok := s.read(key)
	if !ok {
		return nil, nil
	}
	if e.kind != KindHash {
		return nil, ErrWrongType
	}
	hash := e.hash()
	out := make([]string, 0, len(hash))
	for f := range hash {
		out = append(out, f)
	}
	return out, nil
}

func (s *shard) hvals(key string) ([]string, error) {
	e, ok := s.read(key)
	if !ok {
		return nil, nil
	}
	if e.kind != KindHash {
		return nil, ErrWrongType
	}
	hash := e.hash()
	out := make([]string, 0, len(hash))
	for _, v := range hash {
		out = append(out, v)
	}
	return out, nil
}

func (s *shard) hincrby(key, field string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if exists && e.kind != KindHash {
		return 0, ErrWrongType
	}

	var hash map[string]string
	var expiresAt int64
	if exists {
		hash = e.hash()
		expiresAt = e.expiresAt
	} else {
		hash = make(map[string]string)
	}

	var current int64
	if raw, had := hash[field]; had {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, ErrNotInteger
		}
		current = n
	}

	result, overflowed := addOverflows(current, delta)
	if overflowed {
		return 0, ErrOverflow
	}

	hash[field] = strconv.FormatInt(result, 10)
	s.data[key] = &entry{kind: KindHash, value: hash, expiresAt: expiresAt}
	return result, nil
}
