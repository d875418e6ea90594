package server

import (
	"strings"

	"github.com/marrowdb/marrow/internal/resp"
)

// commandMetadata is the COMMAND reply shape: arity (negative means "at
// least |arity|"), flags, and the 1-based first/last key positions plus
// step used by clients to do client-side key extraction.
type commandMetadata struct {
	arity    int
	flags    []string
	firstKey int
	lastKey  int
	step     int
}

// commandDoc is the COMMAND DOCS reply shape for one command.
type commandDoc struct {
	summary    string
	complexity string
	group      string
	since      string
}

// commandSpec is the single source of truth this file builds both
// registries from, so adding a command never means updating two maps that
// can drift out of sync.
type commandSpec struct {
	name       string
	arity      int
	flags      []string
	firstKey   int
	lastKey    int
	step       int
	summary    string
	complexity string
	group      string
}

var commandSpecs = []commandSpec{
	{"PING", -1, []string{"fast", "stale"}, 0, 0, 0, "Ping the server.", "O(1)", "connection"},
	{"ECHO", 2, []string{"fast"}, 0, 0, 0, "Echo the given string.", "O(1)", "connection"},
	{"QUIT", -1, []string{"fast"}, 0, 0, 0, "Close the connection.", "O(1)", "connection"},
	{"SELECT", 2, []string{"fast"}, 0, 0, 0, "Select the logical database (unsupported; always errors).", "O(1)", "connection"},
	{"CLIENT", -2, []string{"fast"}, 0, 0, 0, "Inspect or set connection-scoped state.", "O(1)", "connection"},

	{"CONFIG", -2, []string{"admin", "loading", "stale"}, 0, 0, 0, "Read configuration parameters.", "O(N)", "server"},
	{"COMMAND", -1, []string{"random", "loading", "stale"}, 0, 0, 0, "Get array of command details.", "O(N)", "server"},
	{"INFO", -1, []string{"loading", "stale"}, 0, 0, 0, "Get information and statistics about the server.", "O(1)", "server"},
	{"DBSIZE", 1, []string{"readonly", "fast"}, 0, 0, 0, "Return the number of keys in the keyspace.", "O(1)", "server"},
	{"FLUSHDB", -1, []string{"write"}, 0, 0, 0, "Remove all keys from the keyspace.", "O(N)", "server"},
	{"FLUSHALL", -1, []string{"write"}, 0, 0, 0, "Alias of FLUSHDB; there is only one logical database.", "O(N)", "server"},

	{"DEL", -2, []string{"write"}, 1, -1, 1, "Delete one or more keys.", "O(N)", "generic"},
	{"EXISTS", -2, []string{"readonly", "fast"}, 1, -1, 1, "Count how many of the given keys exist.", "O(N)", "generic"},
	{"TYPE", 2, []string{"readonly", "fast"}, 1, 1, 1, "Determine the type stored at a key.", "O(1)", "generic"},
	{"RENAME", 3, []string{"write"}, 1, 2, 1, "Rename a key.", "O(1)", "generic"},
	{"RENAMENX", 3, []string{"write", "fast"}, 1, 2, 1, "Rename a key only if the new name does not exist.", "O(1)", "generic"},
	{"KEYS", 2, []string{"readonly"}, 0, 0, 0, "Find all keys matching a glob pattern.", "O(N)", "generic"},
	{"EXPIRE", 3, []string{"write", "fast"}, 1, 1, 1, "Set a key's time to live in seconds.", "O(1)", "generic"},
	{"PEXPIRE", 3, []string{"write", "fast"}, 1, 1, 1, "Set a key's time to live in milliseconds.", "O(1)", "generic"},
	{"EXPIREAT", 3, []string{"write", "fast"}, 1, 1, 1, "Set the expiration for a key as a Unix timestamp.", "O(1)", "generic"},
	{"PEXPIREAT", 3, []string{"write", "fast"}, 1, 1, 1, "Set the expiration for a key as a Unix millisecond timestamp.", "O(1)", "generic"},
	{"TTL", 2, []string{"readonly", "fast"}, 1, 1, 1, "Get the time to live for a key in seconds.", "O(1)", "generic"},
	{"PTTL", 2, []string{"readonly", "fast"}, 1, 1, 1, "Get the time to live for a key in milliseconds.", "O(1)", "generic"},
	{"PERSIST", 2, []string{"write", "fast"}, 1, 1, 1, "Remove the expiration from a key.", "O(1)", "generic"},

	{"GET", 2, []string{"readonly", "fast"}, 1, 1, 1, "Get the value of a key.", "O(1)", "string"},
	{"SET", -3, []string{"write", "denyoom"}, 1, 1, 1, "Set the string value of a key, with options.", "O(1)", "string"},
	{"SETNX", 3, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Set a key's value only if it does not already exist.", "O(1)", "string"},
	{"SETEX", 4, []string{"write", "denyoom"}, 1, 1, 1, "Set a key's value and expiration in seconds.", "O(1)", "string"},
	{"PSETEX", 4, []string{"write", "denyoom"}, 1, 1, 1, "Set a key's value and expiration in milliseconds.", "O(1)", "string"},
	{"GETSET", 3, []string{"write", "denyoom"}, 1, 1, 1, "Set a key's value and return its old value.", "O(1)", "string"},
	{"MSET", -3, []string{"write", "denyoom"}, 1, -1, 2, "Set multiple keys to multiple values.", "O(N)", "string"},
	{"MGET", -2, []string{"readonly", "fast"}, 1, -1, 1, "Get the values of multiple keys.", "O(N)", "string"},
	{"INCR", 2, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Increment the integer value of a key by one.", "O(1)", "string"},
	{"DECR", 2, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Decrement the integer value of a key by one.", "O(1)", "string"},
	{"INCRBY", 3, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Increment the integer value of a key by the given amount.", "O(1)", "string"},
	{"DECRBY", 3, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Decrement the integer value of a key by the given amount.", "O(1)", "string"},
	{"APPEND", 3, []string{"write", "denyoom"}, 1, 1, 1, "Append a value to a key.", "O(1)", "string"},
	{"STRLEN", 2, []string{"readonly", "fast"}, 1, 1, 1, "Get the length of the value stored at a key.", "O(1)", "string"},

	{"LPUSH", -3, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Prepend one or more values to a list.", "O(N)", "list"},
	{"RPUSH", -3, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Append one or more values to a list.", "O(N)", "list"},
	{"LPOP", 2, []string{"write", "fast"}, 1, 1, 1, "Remove and return the first element of a list.", "O(1)", "list"},
	{"RPOP", 2, []string{"write", "fast"}, 1, 1, 1, "Remove and return the last element of a list.", "O(1)", "list"},
	{"LLEN", 2, []string{"readonly", "fast"}, 1, 1, 1, "Get the length of a list.", "O(1)", "list"},
	{"LINDEX", 3, []string{"readonly"}, 1, 1, 1, "Get an element from a list by its index.", "O(N)", "list"},
	{"LRANGE", 4, []string{"readonly"}, 1, 1, 1, "Get a range of elements from a list.", "O(N)", "list"},
	{"LSET", 4, []string{"write", "denyoom"}, 1, 1, 1, "Set the value of an element in a list by its index.", "O(N)", "list"},

	{"SADD", -3, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Add one or more members to a set.", "O(N)", "set"},
	{"SREM", -3, []string{"write", "fast"}, 1, 1, 1, "Remove one or more members from a set.", "O(N)", "set"},
	{"SMEMBERS", 2, []string{"readonly"}, 1, 1, 1, "Get all the members in a set.", "O(N)", "set"},
	{"SISMEMBER", 3, []string{"readonly", "fast"}, 1, 1, 1, "Determine whether a value is a member of a set.", "O(1)", "set"},
	{"SCARD", 2, []string{"readonly", "fast"}, 1, 1, 1, "Get the number of members in a set.", "O(1)", "set"},

	{"HSET", -4, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Set one or more fields in a hash.", "O(N)", "hash"},
	{"HMSET", -4, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Set one or more fields in a hash (alias of HSET).", "O(N)", "hash"},
	{"HGET", 3, []string{"readonly", "fast"}, 1, 1, 1, "Get the value of a hash field.", "O(1)", "hash"},
	{"HMGET", -3, []string{"readonly", "fast"}, 1, 1, 1, "Get the values of multiple hash fields.", "O(N)", "hash"},
	{"HGETALL", 2, []string{"readonly"}, 1, 1, 1, "Get all fields and values in a hash.", "O(N)", "hash"},
	{"HDEL", -3, []string{"write", "fast"}, 1, 1, 1, "Delete one or more hash fields.", "O(N)", "hash"},
	{"HEXISTS", 3, []string{"readonly", "fast"}, 1, 1, 1, "Determine if a hash field exists.", "O(1)", "hash"},
	{"HLEN", 2, []string{"readonly", "fast"}, 1, 1, 1, "Get the number of fields in a hash.", "O(1)", "hash"},
	{"HKEYS", 2, []string{"readonly"}, 1, 1, 1, "Get all the fields in a hash.", "O(N)", "hash"},
	{"HVALS", 2, []string{"readonly"}, 1, 1, 1, "Get all the values in a hash.", "O(N)", "hash"},
	{"HINCRBY", 4, []string{"write", "denyoom", "fast"}, 1, 1, 1, "Increment the integer value of a hash field.", "O(1)", "hash"},
}

var (
	commandRegistry     = map[string]commandMetadata{}
	commandDocsRegistry = map[string]commandDoc{}
)

func init() {
	for _, s := range commandSpecs {
		commandRegistry[s.name] = commandMetadata{
			arity:    s.arity,
			flags:    s.flags,
			firstKey: s.firstKey,
			lastKey:  s.lastKey,
			step:     s.step,
		}
		commandDocsRegistry[s.name] = commandDoc{
			summary:    s.summary,
			complexity: s.complexity,
			group:      s.group,
			since:      "1.0.0",
		}
	}
}

func makeFlagsArray(flags []string) resp.Value {
	vals := make([]resp.Value, len(flags))
	for i, f := range flags {
		vals[i] = resp.MakeSimpleString(f)
	}
	return resp.MakeArray(vals)
}

func makeInfoCmdArray(name string) []resp.Value {
	meta := commandRegistry[name]
	return []resp.Value{
		resp.MakeBulkString(strings.ToLower(name)),
		resp.MakeInteger(int64(meta.arity)),
		makeFlagsArray(meta.flags),
		resp.MakeInteger(int64(meta.firstKey)),
		resp.MakeInteger(int64(meta.lastKey)),
		resp.MakeInteger(int64(meta.step)),
	}
}

func getAllCommands() resp.Value {
	cmdArray := make([]resp.Value, 0, len(commandRegistry))
	for name := range commandRegistry {
		cmdArray = append(cmdArray, resp.MakeArray(makeInfoCmdArray(name)))
	}
	return resp.MakeArray(cmdArray)
}

// getCommandsDocs returns documentation for the requested commands, or
// every known command if none were named.
// Format: [Name, [summary, val, since, val, group, val, complexity, val], ...]
func getCommandsDocs(args []resp.Value) resp.Value {
	var targets []string

	if len(args) == 0 {
		targets = make([]string, 0, len(commandDocsRegistry))
		for name := range commandDocsRegistry {
			targets = append(targets, name)
		}
	} else {
		targets = make([]string, 0, len(args))
		for _, arg := range args {
			targets = append(targets, strings.ToUpper(string(arg.String)))
		}
	}

	result := make([]resp.Value, 0, len(targets)*2)

	for _, name := range targets {
		doc, ok := commandDocsRegistry[name]
		if !ok {
			continue
		}

		result = append(result, resp.MakeBulkString(strings.ToLower(name)))

		props := []resp.Value{
			resp.MakeBulkString("summary"),
			resp.MakeBulkString(doc.summary),
			resp.MakeBulkString("since"),
			resp.MakeBulkString(doc.since),
			resp.MakeBulkString("group"),
			resp.MakeBulkString(doc.group),
			resp.MakeBulkString("complexity"),
			resp.MakeBulkString(doc.complexity),
		}

		result = append(result, resp.MakeArray(props))
	}

	return resp.MakeArray(result)
}
