package server

import (
	"net"
	"sync"

	"github.com/marrowdb/marrow/internal/resp"
)

// Peer represents one connected client: a network connection plus the
// RESP codec and the small bit of session state (id, name) CLIENT
// subcommands expose.
type Peer struct {
	conn   net.Conn
	reader *resp.Decoder
	writer *resp.Encoder
	mu     sync.Mutex

	id   uint64
	name []byte // set by CLIENT SETNAME; read only on this connection's own goroutine
}

// NewPeer initializes a new client peer from a network connection.
func NewPeer(conn net.Conn, id uint64) *Peer {
	return &Peer{
		conn:   conn,
		reader: resp.NewDecoder(conn),
		writer: resp.NewEncoder(conn),
		id:     id,
	}
}

// ID returns the monotonically assigned client id.
func (p *Peer) ID() uint64 { return p.id }

// Name returns the name set via CLIENT SETNAME, or nil if unset.
func (p *Peer) Name() []byte { return p.name }

// SetName records the name set via CLIENT SETNAME.
func (p *Peer) SetName(name []byte) { p.name = name }

// RemoteAddr returns the peer's network address for logging.
func (p *Peer) RemoteAddr() net.Addr { return p.conn.RemoteAddr() }

// Send encodes and buffers a RESP value for the client. Thread-safe so a
// future broadcast path could share it, though today only the
// connection's own goroutine calls it.
func (p *Peer) Send(v resp.Value) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer.Write(v)
}

// ReadCommand reads and decodes the next RESP value from the client.
func (p *Peer) ReadCommand() (resp.Value, error) {
	return p.reader.Read()
}

// Close terminates the underlying network connection.
func (p *Peer) Close() error {
	return p.conn.Close()
}

// Flush sends all buffered reply bytes to the client.
func (p *Peer) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer.Flush()
}

// InputBuffered returns the number of bytes immediately available from the
// decoder's read buffer without blocking on the connection — used to
// decide whether a pipelined burst is still arriving.
func (p *Peer) InputBuffered() int {
	return p.reader.Buffered()
}
