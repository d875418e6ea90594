package resp

import "fmt"

// MakeSimpleString constructs a SimpleString Value.
func MakeSimpleString(s string) Value {
	return Value{Type: TypeSimpleString, String: []byte(s)}
}

// MakeError constructs an Error Value. Callers pass the full message
// including the leading error tag, e.g. "ERR syntax error".
func MakeError(s string) Value {
	return Value{Type: TypeError, String: []byte(s)}
}

// MakeErrorf is MakeError with fmt.Sprintf formatting.
func MakeErrorf(format string, args ...interface{}) Value {
	return MakeError(fmt.Sprintf(format, args...))
}

// MakeErrorWrongNumberOfArguments constructs the standard arity error.
func MakeErrorWrongNumberOfArguments(cmd string) Value {
	return MakeErrorf("ERR wrong number of arguments for '%s' command", cmd)
}

// ErrWrongType is the fixed message for a variant mismatch.
const ErrWrongType = "WRONGTYPE Operation against a key holding the wrong kind of value"

// MakeErrorWrongType constructs the standard type-mismatch error.
func MakeErrorWrongType() Value {
	return MakeError(ErrWrongType)
}

// MakeErrorNotInteger is the standard error for a non-integer numeric operand.
func MakeErrorNotInteger() Value {
	return MakeError("ERR value is not an integer or out of range")
}

// MakeBulkString constructs a BulkString Value from a string.
func MakeBulkString(s string) Value {
	return Value{Type: TypeBulkString, String: []byte(s)}
}

// MakeBulkBytes constructs a BulkString Value from a byte slice without an
// extra copy-via-string round trip.
func MakeBulkBytes(b []byte) Value {
	return Value{Type: TypeBulkString, String: b}
}

// MakeNilBulkString constructs the null bulk string ($-1).
func MakeNilBulkString() Value {
	return Value{Type: TypeBulkString, IsNull: true}
}

// MakeInteger constructs an Integer Value.
func MakeInteger(n int64) Value {
	return Value{Type: TypeInteger, Integer: n}
}

// MakeArray constructs a standard RESP array from the given elements.
func MakeArray(values []Value) Value {
	return Value{Type: TypeArray, Array: values}
}

// MakeNilArray constructs the null array (*-1).
func MakeNilArray() Value {
	return Value{Type: TypeArray, IsNull: true}
}

// MakeBulkStringSlice builds an array of bulk strings from plain strings.
func MakeBulkStringSlice(ss []string) Value {
	vals := make([]Value, len(ss))
	for i, s := range ss {
		vals[i] = MakeBulkString(s)
	}
	return MakeArray(vals)
}
