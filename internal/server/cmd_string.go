package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/marrowdb/marrow/internal/keyspace"
	"github.com/marrowdb/marrow/internal/resp"
)

func cmdGet(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("GET")
	}
	val, err := ctx.ks.Get(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	if val == nil {
		return resp.MakeNilBulkString()
	}
	return resp.MakeBulkBytes(val)
}

func cmdSet(ctx *context) resp.Value {
	if len(ctx.args) < 2 {
		return arityError("SET")
	}

	opts, errVal := parseSetOptions(ctx.args, 2)
	if errVal != nil {
		return *errVal
	}

	prev, hadPrev, applied, err := ctx.ks.Set(ctx.argStr(0), ctx.arg(1), opts)
	if err != nil {
		return errorToResp(err)
	}

	if opts.Get {
		if !hadPrev {
			return resp.MakeNilBulkString()
		}
		return resp.MakeBulkBytes(prev)
	}
	if !applied {
		return resp.MakeNilBulkString()
	}
	return resp.MakeSimpleString("OK")
}

// parseSetOptions walks the NX/XX/GET/EX/PX/EXAT/PXAT/KEEPTTL option tail
// of a SET call, starting at idx. It returns a non-nil error Value the
// moment a conflicting or malformed option is seen, matching the option
// interactions spec.md §4.2 describes for SET.
func parseSetOptions(args []resp.Value, idx int) (keyspace.SetOptions, *resp.Value) {
	var opts keyspace.SetOptions
	ttlSpecified := false

	for idx < len(args) {
		tok := strings.ToUpper(string(args[idx].String))
		switch tok {
		case "NX":
			if opts.XX {
				return opts, errp(resp.MakeError("ERR NX cannot use with XX"))
			}
			opts.NX = true
			idx++
		case "XX":
			if opts.NX {
				return opts, errp(resp.MakeError("ERR XX cannot use with NX"))
			}
			opts.XX = true
			idx++
		case "GET":
			opts.Get = true
			idx++
		case "KEEPTTL":
			if ttlSpecified {
				return opts, errp(resp.MakeError("ERR TTL already specified"))
			}
			opts.KeepTTL = true
			ttlSpecified = true
			idx++
		case "EX", "PX", "EXAT", "PXAT":
			if ttlSpecified {
				return opts, errp(resp.MakeError("ERR TTL already specified"))
			}
			idx++
			if idx >= len(args) {
				return opts, errp(resp.MakeError("ERR syntax error"))
			}
			n, perr := strconv.ParseInt(string(args[idx].String), 10, 64)
			if perr != nil {
				return opts, errp(resp.MakeError("ERR value TTL is not integer"))
			}

			opts.HasTTL = true
			switch tok {
			case "EX":
				opts.ExpireAt = time.Now().Add(time.Duration(n) * time.Second)
			case "PX":
				opts.ExpireAt = time.Now().Add(time.Duration(n) * time.Millisecond)
			case "EXAT":
				opts.ExpireAt = time.Unix(n, 0)
			case "PXAT":
				opts.ExpireAt = time.UnixMilli(n)
			}

			ttlSpecified = true
			idx++
		default:
			return opts, errp(resp.MakeError("ERR syntax error with command"))
		}
	}

	return opts, nil
}

func errp(v resp.Value) *resp.Value { return &v }

func cmdSetNX(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("SETNX")
	}
	_, _, applied, err := ctx.ks.Set(ctx.argStr(0), ctx.arg(1), keyspace.SetOptions{NX: true})
	if err != nil {
		return errorToResp(err)
	}
	if applied {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

func cmdGetSet(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("GETSET")
	}
	prev, hadPrev, _, err := ctx.ks.Set(ctx.argStr(0), ctx.arg(1), keyspace.SetOptions{Get: true})
	if err != nil {
		return errorToResp(err)
	}
	if !hadPrev {
		return resp.MakeNilBulkString()
	}
	return resp.MakeBulkBytes(prev)
}

func cmdSetEx(ctx *context) resp.Value {
	if len(ctx.args) != 3 {
		return arityError("SETEX")
	}
	n, ok := ctx.argInt(1)
	if !ok {
		return resp.MakeError("ERR value is not an integer or out of range")
	}
	opts := keyspace.SetOptions{HasTTL: true, ExpireAt: time.Now().Add(time.Duration(n) * time.Second)}
	if _, _, _, err := ctx.ks.Set(ctx.argStr(0), ctx.arg(2), opts); err != nil {
		return errorToResp(err)
	}
	return resp.MakeSimpleString("OK")
}

func cmdPSetEx(ctx *context) resp.Value {
	if len(ctx.args) != 3 {
		return arityError("PSETEX")
	}
	n, ok := ctx.argInt(1)
	if !ok {
		return resp.MakeError("ERR value is not an integer or out of range")
	}
	opts := keyspace.SetOptions{HasTTL: true, ExpireAt: time.Now().Add(time.Duration(n) * time.Millisecond)}
	if _, _, _, err := ctx.ks.Set(ctx.argStr(0), ctx.arg(2), opts); err != nil {
		return errorToResp(err)
	}
	return resp.MakeSimpleString("OK")
}

func cmdMSet(ctx *context) resp.Value {
	if len(ctx.args) == 0 || len(ctx.args)%2 != 0 {
		return arityError("MSET")
	}
	pairs := make(map[string]string, len(ctx.args)/2)
	for i := 0; i < len(ctx.args); i += 2 {
		pairs[ctx.argStr(i)] = ctx.argStr(i + 1)
	}
	ctx.ks.MSet(pairs)
	return resp.MakeSimpleString("OK")
}

func cmdMGet(ctx *context) resp.Value {
	if len(ctx.args) == 0 {
		return arityError("MGET")
	}
	keys := make([]string, len(ctx.args))
	for i := range ctx.args {
		keys[i] = ctx.argStr(i)
	}
	vals := ctx.ks.MGet(keys...)
	out := make([]resp.Value, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = resp.MakeNilBulkString()
		} else {
			out[i] = resp.MakeBulkBytes(v)
		}
	}
	return resp.MakeArray(out)
}

func cmdIncr(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("INCR")
	}
	return incrByReply(ctx, ctx.argStr(0), 1)
}

func cmdDecr(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("DECR")
	}
	return incrByReply(ctx, ctx.argStr(0), -1)
}

func cmdIncrBy(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("INCRBY")
	}
	delta, err := strconv.ParseInt(ctx.argStr(1), 10, 64)
	if err != nil {
		return resp.MakeErrorNotInteger()
	}
	return incrByReply(ctx, ctx.argStr(0), delta)
}

func cmdDecrBy(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("DECRBY")
	}
	delta, err := strconv.ParseInt(ctx.argStr(1), 10, 64)
	if err != nil {
		return resp.MakeErrorNotInteger()
	}
	return incrByReply(ctx, ctx.argStr(0), -delta)
}

func incrByReply(ctx *context, key string, delta int64) resp.Value {
	n, err := ctx.ks.IncrBy(key, delta)
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

func cmdAppend(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("APPEND")
	}
	n, err := ctx.ks.Append(ctx.argStr(0), ctx.arg(1))
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

func cmdStrLen(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("STRLEN")
	}
	n, err := ctx.ks.StrLen(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}
