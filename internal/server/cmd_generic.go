package server

import (
	"time"

	"github.com/marrowdb/marrow/internal/keyspace"
	"github.com/marrowdb/marrow/internal/resp"
)

// errorToResp turns a keyspace sentinel error into its wire reply. The
// sentinels already carry the exact RESP error text, so no remapping table
// is needed beyond the default case for anything unexpected.
func errorToResp(err error) resp.Value {
	return resp.MakeError(err.Error())
}

func cmdDel(ctx *context) resp.Value {
	if len(ctx.args) == 0 {
		return arityError("DEL")
	}
	return resp.MakeInteger(ctx.ks.Del(ctx.argStrs()...))
}

func cmdExists(ctx *context) resp.Value {
	if len(ctx.args) == 0 {
		return arityError("EXISTS")
	}
	return resp.MakeInteger(ctx.ks.Exists(ctx.argStrs()...))
}

func cmdType(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("TYPE")
	}
	return resp.MakeSimpleString(ctx.ks.TypeOf(ctx.argStr(0)))
}

func cmdRename(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("RENAME")
	}
	if err := ctx.ks.Rename(ctx.argStr(0), ctx.argStr(1)); err != nil {
		return errorToResp(err)
	}
	return resp.MakeSimpleString("OK")
}

func cmdRenameNX(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("RENAMENX")
	}
	ok, err := ctx.ks.RenameNX(ctx.argStr(0), ctx.argStr(1))
	if err != nil {
		return errorToResp(err)
	}
	if ok {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

func cmdKeys(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("KEYS")
	}
	return resp.MakeBulkStringSlice(ctx.ks.Keys(ctx.argStr(0)))
}

func cmdDBSize(ctx *context) resp.Value {
	if len(ctx.args) != 0 {
		return arityError("DBSIZE")
	}
	return resp.MakeInteger(ctx.ks.DBSize())
}

func cmdFlushDB(ctx *context) resp.Value {
	if len(ctx.args) != 0 {
		return arityError("FLUSHDB")
	}
	ctx.ks.FlushDB()
	return resp.MakeSimpleString("OK")
}

func cmdExpire(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("EXPIRE")
	}
	secs, ok := ctx.argInt(1)
	if !ok {
		return resp.MakeErrorNotInteger()
	}
	return resp.MakeInteger(ctx.ks.Expire(ctx.argStr(0), time.Duration(secs)*time.Second))
}

func cmdPExpire(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("PEXPIRE")
	}
	ms, ok := ctx.argInt(1)
	if !ok {
		return resp.MakeErrorNotInteger()
	}
	return resp.MakeInteger(ctx.ks.PExpire(ctx.argStr(0), time.Duration(ms)*time.Millisecond))
}

func cmdExpireAt(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("EXPIREAT")
	}
	ts, ok := ctx.argInt(1)
	if !ok {
		return resp.MakeErrorNotInteger()
	}
	return resp.MakeInteger(ctx.ks.ExpireAt(ctx.argStr(0), time.Unix(ts, 0)))
}

func cmdPExpireAt(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("PEXPIREAT")
	}
	ts, ok := ctx.argInt(1)
	if !ok {
		return resp.MakeErrorNotInteger()
	}
	return resp.MakeInteger(ctx.ks.ExpireAt(ctx.argStr(0), time.UnixMilli(ts)))
}

func cmdTTL(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("TTL")
	}
	d, status := ctx.ks.TTL(ctx.argStr(0))
	if status != keyspace.ExpActive {
		return resp.MakeInteger(int64(status))
	}
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return resp.MakeInteger(secs)
}

func cmdPTTL(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("PTTL")
	}
	d, status := ctx.ks.TTL(ctx.argStr(0))
	if status != keyspace.ExpActive {
		return resp.MakeInteger(int64(status))
	}
	return resp.MakeInteger(int64(d / time.Millisecond))
}

func cmdPersist(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("PERSIST")
	}
	return resp.MakeInteger(ctx.ks.Persist(ctx.argStr(0)))
}
