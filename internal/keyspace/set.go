package keyspace

import "time"

func (s *shard) sadd(key string, members []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if exists && e.kind != KindSet {
		return 0, ErrWrongType
	}

	var set map[string]struct{}
	var expiresAt int64
	if exists {
		set = e.set()
		expiresAt = e.expiresAt
	} else {
		set = make(map[string]struct{}, len(members))
	}

	var added int64
	for _, m := range members {
		if _, dup := set[m]; !dup {
			set[m] = struct{}{}
			added++
		}
	}

	s.data[key] = &entry{kind: KindSet, value: set, expiresAt: expiresAt}
	return added, nil
}

func (s *shard) srem(key string, members []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.resolveLocked(key, time.Now().UnixNano())
	if !exists {
		return 0, nil
	}
	if e.kind != KindSet {
		return 0, ErrWrongType
	}

	set := e.set()
	var removed int64
	for _, m := range members {
		if _, ok := set[m]; ok {
			delete(set, m)
			removed++
		}
	}

	if len(set) == 0 {
		delete(s.data, key)
	}
	return removed, nil
}

func (s *shard) smembers(key string) ([]string, error) {
	e, ok := s.read(key)
	if !ok {
		return nil, nil
	}
	if e.kind != KindSet {
		return nil, ErrWrongType
	}

	set := e.set()
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	return out, nil
}

func (s *shard) sismember(key, member string) (bool, error) {
	e, ok := s.read(key)
	if !ok {
		return false, nil
	}
	if e.kind != KindSet {
		return false, ErrWrongType
	}
	_, isMember := e.set()[member]
	return isMember, nil
}

func (s *shard) scard(key string) (int64, error) {
	e, ok := s.read(key)
	if !ok {
		return 0, nil
	}
	if e.kind != KindSet {
		return 0, ErrWrongType
	}
	return int64(len(e.set())), nil
}
