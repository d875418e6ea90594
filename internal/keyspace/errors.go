package keyspace

import "errors"

// Sentinel errors surfaced by keyspace operations. The command layer
// translates these into RESP error replies; the store itself never panics
// on a malformed or mistyped request.
var (
	// ErrWrongType means the key holds a value of a different kind than
	// the operation requires.
	ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

	// ErrNoSuchKey means the operation requires the key to already exist.
	ErrNoSuchKey = errors.New("ERR no such key")

	// ErrNotInteger means a scalar or hash field did not parse as a
	// signed 64-bit decimal integer where one was required.
	ErrNotInteger = errors.New("ERR value is not an integer or out of range")

	// ErrIndexOutOfRange means a positional list operation addressed a
	// slot outside the list's bounds.
	ErrIndexOutOfRange = errors.New("ERR index out of range")

	// ErrOverflow means an increment/decrement would carry a 64-bit
	// signed integer outside its representable range.
	ErrOverflow = errors.New("ERR increment or decrement would overflow")
)
