package keyspace

// Kind tags which of the four value shapes an entry holds.
type Kind byte

const (
	KindString Kind = iota + 1
	KindList
	KindSet
	KindHash
)

// TypeName is the name TYPE replies with for each kind.
func (k Kind) TypeName() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindHash:
		return "hash"
	default:
		return "none"
	}
}

// entry is the tagged union stored per key. value holds one of:
// string (KindString), []string (KindList), map[string]struct{} (KindSet),
// map[string]string (KindHash).
type entry struct {
	kind      Kind
	value     interface{}
	expiresAt int64 // UnixNano absolute deadline; 0 means no TTL
}

func (e *entry) str() string          { return e.value.(string) }
func (e *entry) list() []string       { return e.value.([]string) }
func (e *entry) set() map[string]struct{} {
	return e.value.(map[string]struct{})
}
func (e *entry) hash() map[string]string { return e.value.(map[string]string) }
