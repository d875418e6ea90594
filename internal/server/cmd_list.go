package server

import "github.com/marrowdb/marrow/internal/resp"

func cmdLPush(ctx *context) resp.Value {
	if len(ctx.args) < 2 {
		return arityError("LPUSH")
	}
	n, err := ctx.ks.LPush(ctx.argStr(0), ctx.argStrs()[1:]...)
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

func cmdRPush(ctx *context) resp.Value {
	if len(ctx.args) < 2 {
		return arityError("RPUSH")
	}
	n, err := ctx.ks.RPush(ctx.argStr(0), ctx.argStrs()[1:]...)
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

func cmdLPop(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("LPOP")
	}
	v, ok, err := ctx.ks.LPop(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	if !ok {
		return resp.MakeNilBulkString()
	}
	return resp.MakeBulkBytes(v)
}

func cmdRPop(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("RPOP")
	}
	v, ok, err := ctx.ks.RPop(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	if !ok {
		return resp.MakeNilBulkString()
	}
	return resp.MakeBulkBytes(v)
}

func cmdLLen(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("LLEN")
	}
	n, err := ctx.ks.LLen(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

func cmdLIndex(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("LINDEX")
	}
	idx, ok := ctx.argInt(1)
	if !ok {
		return resp.MakeErrorNotInteger()
	}
	v, found, err := ctx.ks.LIndex(ctx.argStr(0), idx)
	if err != nil {
		return errorToResp(err)
	}
	if !found {
		return resp.MakeNilBulkString()
	}
	return resp.MakeBulkBytes(v)
}

func cmdLRange(ctx *context) resp.Value {
	if len(ctx.args) != 3 {
		return arityError("LRANGE")
	}
	start, ok1 := ctx.argInt(1)
	stop, ok2 := ctx.argInt(2)
	if !ok1 || !ok2 {
		return resp.MakeErrorNotInteger()
	}
	vals, err := ctx.ks.LRange(ctx.argStr(0), start, stop)
	if err != nil {
		return errorToResp(err)
	}
	out := make([]resp.Value, len(vals))
	for i, v := range vals {
		out[i] = resp.MakeBulkBytes(v)
	}
	return resp.MakeArray(out)
}

func cmdLSet(ctx *context) resp.Value {
	if len(ctx.args) != 3 {
		return arityError("LSET")
	}
	idx, ok := ctx.argInt(1)
	if !ok {
		return resp.MakeErrorNotInteger()
	}
	if err := ctx.ks.LSet(ctx.argStr(0), idx, ctx.arg(2)); err != nil {
		return errorToResp(err)
	}
	return resp.MakeSimpleString("OK")
}
