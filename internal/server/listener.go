package server

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/marrowdb/marrow/internal/resp"
	"go.uber.org/zap"
)

// Serve accepts connections on listener, handling each on its own
// goroutine, until the listener is closed. It then waits for every
// in-flight connection handler to return before returning itself, so a
// caller can use it as the last step of a graceful shutdown sequence.
func Serve(listener net.Listener, engine *Engine, log *zap.Logger) {
	var wg sync.WaitGroup

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			log.Error("accept error", zap.Error(err))
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			HandleConnection(conn, engine, log)
		}()
	}

	wg.Wait()
}

// HandleConnection drives one client connection: decode a request,
// dispatch it, flush the reply, repeat until the client disconnects or
// sends QUIT.
func HandleConnection(conn net.Conn, engine *Engine, log *zap.Logger) {
	peer := NewPeer(conn, engine.NextClientID())

	if log.Core().Enabled(zap.DebugLevel) {
		log.Debug("client connected", zap.String("addr", conn.RemoteAddr().String()), zap.Uint64("id", peer.ID()))
	}
	defer func() {
		peer.Close() //nolint:errcheck
		if log.Core().Enabled(zap.DebugLevel) {
			log.Debug("client disconnected", zap.String("addr", conn.RemoteAddr().String()), zap.Uint64("id", peer.ID()))
		}
	}()

	for {
		cmdValue, err := peer.ReadCommand()
		if err != nil {
			var perr *resp.ProtocolError
			if errors.As(err, &perr) {
				if sendErr := peer.Send(resp.MakeErrorf("ERR %s", perr.Error())); sendErr == nil {
					peer.Flush() //nolint:errcheck
				}
			} else if err != io.EOF {
				log.Warn("read command failed", zap.Error(err))
			}
			return
		}

		if cmdValue.Type != resp.TypeArray || len(cmdValue.Array) == 0 {
			log.Error("invalid request type")
			continue
		}

		commandName := strings.ToUpper(string(cmdValue.Array[0].String))
		args := cmdValue.Array[1:]

		result := engine.Execute(commandName, args, peer)

		if err = peer.Send(result); err != nil {
			log.Error("error writing response", zap.Error(err))
			return
		}

		// Only flush once the client's pipelined burst is drained, so a
		// back-to-back pipeline of N commands costs one syscall, not N.
		// QUIT always flushes, since the connection closes right after.
		if peer.InputBuffered() == 0 || commandName == "QUIT" {
			if err := peer.Flush(); err != nil {
				return
			}
		}

		if commandName == "QUIT" {
			return
		}
	}
}
