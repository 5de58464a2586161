// Package transport upgrades inbound HTTP connections to WebSocket text
// frames and wires each connection to a player.Conn, matching the
// teacher's split between a network-facing gateway and the engine's
// Send/Recv abstraction.
package transport

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"fivedraw/internal/player"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	outboxCapacity = 32
	inboxCapacity  = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SessionFunc is invoked once per accepted connection with a Conn wired
// to that connection's read/write pumps.
type SessionFunc func(ctx context.Context, conn *player.Conn)

// Handler upgrades r to a WebSocket and runs run for its lifetime.
func Handler(run SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[transport] upgrade failed: %v", err)
			return
		}
		go serve(ws, run)
	}
}

func serve(ws *websocket.Conn, run SessionFunc) {
	defer ws.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outbox := make(chan string, outboxCapacity)
	inbox := make(chan string, inboxCapacity)
	conn := player.NewConn(outbox, inbox)

	go writePump(ctx, ws, outbox, cancel)
	go readPump(ws, inbox, cancel)

	run(ctx, conn)
	cancel()
}

// readPump forwards inbound text frames to inbox until the connection
// closes, then closes inbox so any blocked player.Conn.ReadLine sees the
// Disconnect sentinel.
func readPump(ws *websocket.Conn, inbox chan<- string, cancel context.CancelFunc) {
	defer cancel()
	defer close(inbox)

	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return
		}
		select {
		case inbox <- string(msg):
		default:
			// A slow consumer; drop rather than block the read loop.
		}
	}
}

// writePump drains outbox to the wire and keeps the connection alive
// with periodic pings, until ctx is cancelled.
func writePump(ctx context.Context, ws *websocket.Conn, outbox <-chan string, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer cancel()

	for {
		select {
		case msg, ok := <-outbox:
			if !ok {
				return
			}
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		case <-ticker.C:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
