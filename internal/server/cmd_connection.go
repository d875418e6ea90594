package server

import (
	"strings"

	"github.com/marrowdb/marrow/internal/resp"
)

func cmdPing(ctx *context) resp.Value {
	switch len(ctx.args) {
	case 0:
		return resp.MakeSimpleString("PONG")
	case 1:
		return resp.MakeBulkBytes(ctx.arg(0))
	default:
		return arityError("PING")
	}
}

func cmdEcho(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("ECHO")
	}
	return resp.MakeBulkBytes(ctx.arg(0))
}

// cmdQuit replies OK; the connection driver closes the socket once this
// reply has been flushed to the client.
func cmdQuit(ctx *context) resp.Value {
	if len(ctx.args) != 0 {
		return arityError("QUIT")
	}
	return resp.MakeSimpleString("OK")
}

// cmdSelect always errors: the keyspace is a single logical database, so
// there is nothing to switch to, per spec.md §9's Open Question.
func cmdSelect(ctx *context) resp.Value {
	if len(ctx.args) != 1 {
		return arityError("SELECT")
	}
	return resp.MakeError("ERR SELECT is not supported, only database 0 exists")
}

func cmdClient(ctx *context) resp.Value {
	if len(ctx.args) == 0 {
		return arityError("CLIENT")
	}

	sub := strings.ToUpper(ctx.argStr(0))
	switch sub {
	case "GETNAME":
		if len(ctx.peer.Name()) == 0 {
			return resp.MakeNilBulkString()
		}
		return resp.MakeBulkBytes(ctx.peer.Name())
	case "SETNAME":
		if len(ctx.args) != 2 {
			return arityError("CLIENT")
		}
		ctx.peer.SetName(ctx.arg(1))
		return resp.MakeSimpleString("OK")
	case "ID":
		return resp.MakeInteger(int64(ctx.peer.ID()))
	default:
		return resp.MakeErrorf("ERR unknown CLIENT subcommand '%s'", ctx.argStr(0))
	}
}
