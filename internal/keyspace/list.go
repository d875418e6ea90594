package keyspace

import "time"

// lpush/rpush push order: LPUSH k a b c leaves head = c,b,a (each value in
// the variadic list is pushed in turn, so later arguments end up closer to
// the head); RPUSH leaves the same arguments in order at the tail.

func (s *shard) lpush(key string, values []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if exists && e.kind != KindList {
		return 0, ErrWrongType
	}

	var list []string
	if exists {
		list = e.list()
	}

	for _, v := range values {
		list = append([]string{v}, list...)
	}

	s.data[key] = &entry{kind: KindList, value: list, expiresAt: expiresOf(e, exists)}
	return int64(len(list)), nil
}

func (s *shard) rpush(key string, values []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if exists && e.kind != KindList {
		return 0, ErrWrongType
	}

	var list []string
	if exists {
		list = e.list()
	}
	list = append(list, values...)

	s.data[key] = &entry{kind: KindList, value: list, expiresAt: expiresOf(e, exists)}
	return int64(len(list)), nil
}

func (s *shard) lpop(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if !exists {
		return nil, false, nil
	}
	if e.kind != KindList {
		return nil, false, ErrWrongType
	}

	list := e.list()
	head := list[0]
	list = list[1:]
	s.storeOrDeleteList(key, e, list)
	return []byte(head), true, nil
}

func (s *shard) rpop(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if !exists {
		return nil, false, nil
	}
	if e.kind != KindList {
		return nil, false, ErrWrongType
	}

	list := e.list()
	last := len(list) - 1
	tail := list[last]
	list = list[:last]
	s.storeOrDeleteList(key, e, list)
	return []byte(tail), true, nil
}

// storeOrDeleteList writes back a mutated list, removing the key entirely
// if it became empty (container variants with zero elements do not exist).
func (s *shard) storeOrDeleteList(key string, prev *entry, list []string) {
	if len(list) == 0 {
		delete(s.data, key)
		return
	}
	s.data[key] = &entry{kind: KindList, value: list, expiresAt: prev.expiresAt}
}

func (s *shard) llen(key string) (int64, error) {
	e, ok := s.read(key)
	if !ok {
		return 0, nil
	}
	if e.kind != KindList {
		return 0, ErrWrongType
	}
	return int64(len(e.list())), nil
}

func (s *shard) lindex(key string, index int64) ([]byte, bool, error) {
	e, ok := s.read(key)
	if !ok {
		return nil, false, nil
	}
	if e.kind != KindList {
		return nil, false, ErrWrongType
	}

	list := e.list()
	i := normalizeIndex(index, len(list))
	if i < 0 || i >= len(list) {
		return nil, false, nil
	}
	return []byte(list[i]), true, nil
}

func (s *shard) lrange(key string, start, stop int64) ([][]byte, error) {
	e, ok := s.read(key)
	if !ok {
		return nil, nil
	}
	if e.kind != KindList {
		return nil, ErrWrongType
	}

	list := e.list()
	n := len(list)

	lo := clampIndex(normalizeIndex(start, n), n)
	hi := clampIndex(normalizeIndex(stop, n), n)

	if n == 0 || lo > hi {
		return [][]byte{}, nil
	}

	out := make([][]byte, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, []byte(list[i]))
	}
	return out, nil
}

func (s *shard) lset(key string, index int64, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if !exists {
		return ErrNoSuchKey
	}
	if e.kind != KindList {
		return ErrWrongType
	}

	list := e.list()
	i := normalizeIndex(index, len(list))
	if i < 0 || i >= len(list) {
		return ErrIndexOutOfRange
	}

	list[i] = string(value)
	return nil
}

// normalizeIndex turns a possibly-negative index (counting from the tail,
// -1 = last element) into a 0-based index; it may still be out of bounds.
func normalizeIndex(i int64, n int) int {
	if i < 0 {
		i += int64(n)
	}
	return int(i)
}

// clampIndex clamps a normalized index into [0, n-1]. Used by LRANGE,
// where both endpoints are clamped to the valid range after
// negative-normalization rather than rejected.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

func expiresOf(e *entry, exists bool) int64 {
	if exists {
		return e.expiresAt
	}
	return 0
}
