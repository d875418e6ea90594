package server

import (
	"strconv"

	"github.com/marrowdb/marrow/internal/keyspace"
	"github.com/marrowdb/marrow/internal/resp"
)

// context is the per-call state a command handler sees: the arguments
// following the command name, the shared keyspace, and the peer issuing
// the call (for CLIENT/connection-scoped commands).
type context struct {
	args []resp.Value
	ks   keyspace.Keyspace
	peer *Peer
}

// arg returns the i-th argument's raw bytes.
func (c *context) arg(i int) []byte { return c.args[i].String }

// argStr returns the i-th argument as a string.
func (c *context) argStr(i int) string { return string(c.args[i].String) }

// argStrs returns every argument as a string slice, e.g. for variadic key
// lists (DEL, EXISTS, MGET).
func (c *context) argStrs() []string {
	out := make([]string, len(c.args))
	for i := range c.args {
		out[i] = c.argStr(i)
	}
	return out
}

// argInt parses the i-th argument as a signed 64-bit decimal integer.
func (c *context) argInt(i int) (int64, bool) {
	n, err := strconv.ParseInt(c.argStr(i), 10, 64)
	return n, err == nil
}

// command is one entry in the engine's dispatch table.
type command interface {
	execute(ctx *context) resp.Value
}

// commandFunc adapts a plain function to the command interface.
type commandFunc func(ctx *context) resp.Value

func (c commandFunc) execute(ctx *context) resp.Value { return c(ctx) }
