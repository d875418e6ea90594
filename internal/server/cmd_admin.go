package server

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marrowdb/marrow/internal/keyspace"
	"github.com/marrowdb/marrow/internal/resp"
	"github.com/spf13/viper"
)

func cmdFlushAll(ctx *context) resp.Value {
	return cmdFlushDB(ctx)
}

func cmdCommand(ctx *context) resp.Value {
	if len(ctx.args) == 0 {
		return getAllCommands()
	}

	sub := strings.ToUpper(ctx.argStr(0))
	switch sub {
	case "DOCS":
		return getCommandsDocs(ctx.args[1:])
	case "COUNT":
		return resp.MakeInteger(int64(len(commandRegistry)))
	default:
		return resp.MakeErrorf("ERR unknown COMMAND subcommand '%s'", ctx.argStr(0))
	}
}

func cmdConfig(ctx *context) resp.Value {
	if len(ctx.args) == 0 {
		return arityError("CONFIG")
	}

	sub := strings.ToUpper(ctx.argStr(0))
	switch sub {
	case "GET":
		if len(ctx.args) != 2 {
			return arityError("CONFIG")
		}
		return configGet(ctx.argStr(1))
	default:
		return resp.MakeErrorf("ERR unknown CONFIG subcommand '%s'", ctx.argStr(0))
	}
}

// configGet walks the live viper settings tree and returns every dot-path
// key matching pattern, flattened to [key, value, key, value...]. An
// unmatched pattern yields an empty array rather than an error, per
// spec.md §9's Open Question.
func configGet(pattern string) resp.Value {
	flat := make(map[string]string)
	flattenSettings("", viper.AllSettings(), flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		if keyspace.Match(pattern, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]resp.Value, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, resp.MakeBulkString(k), resp.MakeBulkString(flat[k]))
	}
	return resp.MakeArray(out)
}

func flattenSettings(prefix string, m map[string]interface{}, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flattenSettings(key, nested, out)
			continue
		}
		out[key] = fmt.Sprintf("%v", v)
	}
}

func cmdInfo(ctx *context) resp.Value {
	lines := []string{
		"# Server",
		"redis_version:2.0.0-marrow",
		"",
		"# Keyspace",
		fmt.Sprintf("db0:keys=%d", ctx.ks.DBSize()),
	}
	return resp.MakeBulkString(strings.Join(lines, "\r\n") + "\r\n")
}
