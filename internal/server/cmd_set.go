package server

import "github.com/marrowdb/marrow/internal/resp"

func cmdSAdd(ctx *context) resp.Value {
	if len(ctx.args) < 2 {
		return arityError("SADD")
	}
	n, err := ctx.ks.SAdd(ctx.argStr(0), ctx.argStrs()[1:]...)
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

func cmdSRem(ctx *context) resp.Value {
	if len(ctx.args) < 2 {
		return arityError("SREM")
	}
	n, err := ctx.ks.SRem(ctx.argStr(0), ctx.argStrs()[1:]...)
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}

func cmdSMembers(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("SMEMBERS")
	}
	members, err := ctx.ks.SMembers(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeBulkStringSlice(members)
}

func cmdSIsMember(ctx *context) resp.Value {
	if len(ctx.args) != 2 {
		return arityError("SISMEMBER")
	}
	ok, err := ctx.ks.SIsMember(ctx.argStr(0), ctx.argStr(1))
	if err != nil {
		return errorToResp(err)
	}
	if ok {
		return resp.MakeInteger(1)
	}
	return resp.MakeInteger(0)
}

func cmdSCard(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("SCARD")
	}
	n, err := ctx.ks.SCard(ctx.argStr(0))
	if err != nil {
		return errorToResp(err)
	}
	return resp.MakeInteger(n)
}
