package server

// registerCommands builds the dispatch table once, at construction time.
// Every entry here must also appear in commandRegistry/commandDocsRegistry
// (docs.go) so COMMAND and COMMAND DOCS stay consistent with what actually
// runs.
func (e *Engine) registerCommands() {
	// Connection.
	e.register("PING", commandFunc(cmdPing))
	e.register("ECHO", commandFunc(cmdEcho))
	e.register("QUIT", commandFunc(cmdQuit))
	e.register("SELECT", commandFunc(cmdSelect))
	e.register("CLIENT", commandFunc(cmdClient))

	// Server/admin.
	e.register("CONFIG", commandFunc(cmdConfig))
	e.register("COMMAND", commandFunc(cmdCommand))
	e.register("INFO", commandFunc(cmdInfo))
	e.register("DBSIZE", commandFunc(cmdDBSize))
	e.register("FLUSHDB", commandFunc(cmdFlushDB))
	e.register("FLUSHALL", commandFunc(cmdFlushAll))

	// Generic key commands.
	e.register("DEL", commandFunc(cmdDel))
	e.register("EXISTS", commandFunc(cmdExists))
	e.register("TYPE", commandFunc(cmdType))
	e.register("RENAME", commandFunc(cmdRename))
	e.register("RENAMENX", commandFunc(cmdRenameNX))
	e.register("KEYS", commandFunc(cmdKeys))
	e.register("EXPIRE", commandFunc(cmdExpire))
	e.register("PEXPIRE", commandFunc(cmdPExpire))
	e.register("EXPIREAT", commandFunc(cmdExpireAt))
	e.register("PEXPIREAT", commandFunc(cmdPExpireAt))
	e.register("TTL", commandFunc(cmdTTL))
	e.register("PTTL", commandFunc(cmdPTTL))
	e.register("PERSIST", commandFunc(cmdPersist))

	// String commands.
	e.register("GET", commandFunc(cmdGet))
	e.register("SET", commandFunc(cmdSet))
	e.register("SETNX", commandFunc(cmdSetNX))
	e.register("SETEX", commandFunc(cmdSetEx))
	e.register("PSETEX", commandFunc(cmdPSetEx))
	e.register("GETSET", commandFunc(cmdGetSet))
	e.register("MSET", commandFunc(cmdMSet))
	e.register("MGET", commandFunc(cmdMGet))
	e.register("INCR", commandFunc(cmdIncr))
	e.register("DECR", commandFunc(cmdDecr))
	e.register("INCRBY", commandFunc(cmdIncrBy))
	e.register("DECRBY", commandFunc(cmdDecrBy))
	e.register("APPEND", commandFunc(cmdAppend))
	e.register("STRLEN", commandFunc(cmdStrLen))

	// List commands.
	e.register("LPUSH", commandFunc(cmdLPush))
	e.register("RPUSH", commandFunc(cmdRPush))
	e.register("LPOP", commandFunc(cmdLPop))
	e.register("RPOP", commandFunc(cmdRPop))
	e.register("LLEN", commandFunc(cmdLLen))
	e.register("LINDEX", commandFunc(cmdLIndex))
	e.register("LRANGE", commandFunc(cmdLRange))
	e.register("LSET", commandFunc(cmdLSet))

	// Set commands.
	e.register("SADD", commandFunc(cmdSAdd))
	e.register("SREM", commandFunc(cmdSRem))
	e.register("SMEMBERS", commandFunc(cmdSMembers))
	e.register("SISMEMBER", commandFunc(cmdSIsMember))
	e.register("SCARD", commandFunc(cmdSCard))

	// Hash commands.
	e.register("HSET", commandFunc(cmdHSet))
	e.register("HMSET", commandFunc(cmdHMSet))
	e.register("HGET", commandFunc(cmdHGet))
	e.register("HMGET", commandFunc(cmdHMGet))
	e.register("HGETALL", commandFunc(cmdHGetAll))
	e.register("HDEL", commandFunc(cmdHDel))
	e.register("HEXISTS", commandFunc(cmdHExists))
	e.register("HLEN", commandFunc(cmdHLen))
	e.register("HKEYS", commandFunc(cmdHKeys))
	e.register("HVALS", commandFunc(cmdHVals))
	e.register("HINCRBY", commandFunc(cmdHIncrBy))
}
