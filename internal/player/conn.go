package player

import (
	"context"
	"sync"
)

// Conn is a connection's send/receive handle pair:
//   - Send is a clonable, lock-free multi-producer sender — backed here by
//     a buffered channel; any task may enqueue a message at any time.
//   - the receive side is guarded by a mutex, acquired for the duration of
//     a single prompt-and-read so only one component (Session or
//     GameStateMachine) ever owns a connection's inbound stream at a time.
type Conn struct {
	outbox chan<- string
	inbox  <-chan string
	recvMu sync.Mutex
}

// NewConn wires a Conn around the outbound/inbound channels owned by the
// transport layer (internal/transport). outbox is written to by anyone
// holding the Conn; inbox is closed by the transport's read loop when the
// underlying connection closes.
func NewConn(outbox chan<- string, inbox <-chan string) *Conn {
	return &Conn{outbox: outbox, inbox: inbox}
}

// Send enqueues msg for delivery. If the outbound buffer is full the
// message is dropped rather than blocking the caller — matching the
// teacher's gateway.Connection.Send behavior ("Drop message if buffer
// full"); a dropped broadcast does not stall the sender, and the
// session's own disconnect cleanup will eventually remove a truly dead
// peer.
func (c *Conn) Send(msg string) {
	select {
	case c.outbox <- msg:
	default:
	}
}

// ReadLine acquires the receive-handle exclusively and waits for exactly
// one inbound line. ok is false if the connection closed (the Disconnect
// sentinel the rest of the engine reacts to) or ctx was cancelled first.
func (c *Conn) ReadLine(ctx context.Context) (line string, ok bool) {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()

	select {
	case line, open := <-c.inbox:
		if !open {
			return "", false
		}
		return line, true
	case <-ctx.Done():
		return "", false
	}
}

// Ask sends prompt then reads exactly one response line, holding the
// receive-handle for the whole exchange.
func (c *Conn) Ask(ctx context.Context, prompt string) (string, bool) {
	c.Send(prompt)
	return c.ReadLine(ctx)
}
