package server

import "github.com/marrowdb/marrow/internal/resp"

func cmdHSet(ctx *context) resp.Value {
	if len(ctx.args) < 3 || len(ctx.args)%2 != 1 {
		return arityError("HSET")
	}
	pairs := make(map[string]string, (len(ctx.args)-1)/2)
	for i := 1; i < len(ctx.args); i += 2 {
		pairs[ctx.argStr(i)] = ctx.argStr(i + 1)
	}
	n, err := ctx.ks.HSet(ctx.argStr(0), pairs)
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

// cmdHMSet is the historical alias for HSET that replies OK instead of a
// created-field count.
func cmdHMSet(ctx *context) resp.Value {
	if len(ctx.args) < 3 || len(ctx.args)%2 != 1 {
		return arityError("HMSET")
	}
	pairs := make(map[string]string, (len(ctx.args)-1)/2)
	for i := 1; i < len(ctx.args); i += 2 {
		pairs[ctx.argStr(i)] = ctx.argStr(i + 1)
	}
	if _, err := ctx.ks.HSet(ctx.argStr(0), pairs); err != nil {
		return errorToResp(err)
	}
	return resp.MakeSimpleString("OK")
}

func cmdHGet(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("HGET")
	}
	v, ok, err := ctx.ks.HGet(ctx.argStr(0), ctx.argStr(1))
	if err != nil {
		return errorToResp(err)
	}
	if !ok {
		return resp.MakeNilBulkString()
	}
	return resp.MakeBulkBytes(v)
}

func cmdHMGet(ctx *context) resp.Value {
	if len(ctx.args) < 2 {
		return arityError("HMGET")
	}
	vals, err := ctx.ks.HMGet(ctx.argStr(0), ctx.argStrs()[1:]...)
	if err != nil {
		return errorToResp(err)
	}
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

func cmdHGetAll(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("HGETALL")
	}
	flat, err := ctx.ks.HGetAll(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeBulkStringSlice(flat)
}

func cmdHDel(ctx *context) resp.Value {
	if len(ctx.args) < 2 {
		return arityError("HDEL")
	}
	n, err := ctx.ks.HDel(ctx.argStr(0), ctx.argStrs()[1:]...)
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

func cmdHExists(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("HEXISTS")
	}
	ok, err := ctx.ks.HExists(ctx.argStr(0), ctx.argStr(1))
	if err != nil {
		return errorToResp(err)
	}
	if ok {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

func cmdHLen(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("HLEN")
	}
	n, err := ctx.ks.HLen(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

func cmdHKeys(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("HKEYS")
	}
	keys, err := ctx.ks.HKeys(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeBulkStringSlice(keys)
}

func cmdHVals(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("HVALS")
	}
	vals, err := ctx.ks.HVals(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeBulkStringSlice(vals)
}

func cmdHIncrBy(ctx *context) resp.Value {
	if len(ctx.args) != 3 {
		return arityError("HINCRBY")
	}
	delta, ok := ctx.argInt(2)
	if !ok {
		return resp.MakeErrorNotInteger()
	}
	n, err := ctx.ks.HIncrBy(ctx.argStr(0), ctx.argStr(1), delta)
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}
