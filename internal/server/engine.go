package server

import (
	"strings"
	"sync"
	"time"

	"github.com/marrowdb/marrow/internal/config"
	"github.com/marrowdb/marrow/internal/keyspace"
	"github.com/marrowdb/marrow/internal/resp"
	"go.uber.org/zap"
)

// Engine coordinates command dispatch and the background active-expiration
// sweep. It has no connection-specific state; every Peer shares one Engine.
type Engine struct {
	commands map[string]command
	ks       keyspace.Keyspace
	cfg      *config.Config
	logger   *zap.Logger

	stopGC   chan struct{}
	stopOnce sync.Once
	gcWG     sync.WaitGroup

	nextClientID uint64
	idMu         sync.Mutex
}

// NewEngine builds the command table against ks and, if enabled, starts
// the background GC sweep.
func NewEngine(ks keyspace.Keyspace, cfg *config.Config, logger *zap.Logger) *Engine {
	e := &Engine{
		commands: make(map[string]command),
		ks:       ks,
		cfg:      cfg,
		logger:   logger,
		stopGC:   make(chan struct{}),
	}
	e.registerCommands()

	if cfg.GC.Enabled {
		e.gcWG.Add(1)
		go e.runGCLoop()
	}

	return e
}

// NextClientID hands out the next monotonically increasing client id.
func (e *Engine) NextClientID() uint64 {
	e.idMu.Lock()
	defer e.idMu.Unlock()
	e.nextClientID++
	return e.nextClientID
}

func (e *Engine) register(name string, cmd command) {
	e.commands[strings.ToUpper(name)] = cmd
}

// runGCLoop drives the active expiration sweep described in spec.md §4.2:
// every tick, sample SamplesPerCheck keys per shard, and if more than
// MatchThreshold of the sampled keys were expired, sweep again immediately
// rather than waiting for the next tick — this keeps worst-case staleness
// bounded even under a burst of short-TTL writes.
func (e *Engine) runGCLoop() {
	defer e.gcWG.Done()

	ticker := time.NewTicker(e.cfg.GC.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for {
				ratio := e.ks.DeleteExpired(e.cfg.GC.SamplesPerCheck)
				if ratio > 0 && e.logger.Core().Enabled(zap.DebugLevel) {
					e.logger.Debug("gc sweep", zap.Float64("expired_ratio", ratio))
				}
				if ratio <= e.cfg.GC.MatchThreshold {
					break
				}
			}
		case <-e.stopGC:
			return
		}
	}
}

// Execute looks up name in the command table and runs it against args.
// An unknown command name yields the standard ERR reply rather than a Go
// error, since the wire protocol has no other way to carry it.
func (e *Engine) Execute(name string, args []resp.Value, peer *Peer) resp.Value {
	name = strings.ToUpper(name)

	if e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("dispatch", zap.String("cmd", name), zap.Int("argc", len(args)))
	}

	cmd, ok := e.commands[name]
	if !ok {
		return resp.MakeErrorf("ERR unknown command '%s'", strings.ToLower(name))
	}

	return cmd.execute(&context{args: args, ks: e.ks, peer: peer})
}

// Shutdown stops the background GC sweep and waits for it to exit.
func (e *Engine) Shutdown() {
	e.stopOnce.Do(func() {
		close(e.stopGC)
	})
	e.gcWG.Wait()
}

func arityError(name string) resp.Value {
	return resp.MakeErrorWrongNumberOfArguments(strings.ToLower(name))
}
