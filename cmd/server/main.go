// Command server runs the five-card draw poker server: a single
// listening TCP port serving WebSocket upgrades at /ws, backed by a
// pluggable PlayerStore selected via environment variables.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"fivedraw/internal/player"
	"fivedraw/internal/serverlobby"
	"fivedraw/internal/session"
	"fivedraw/internal/store"
	"fivedraw/internal/transport"
)

const defaultAddr = ":1112"

func main() {
	st, backend, err := store.NewFromEnv()
	if err != nil {
		log.Fatalf("[server] failed to initialize store: %v", err)
	}
	defer st.Close()
	log.Printf("[server] using %s store backend", backend)

	sl := serverlobby.New(st)

	mux := http.NewServeMux()
	mux.Handle("/ws", transport.Handler(func(ctx context.Context, conn *player.Conn) {
		session.New(conn, st, sl).Run(ctx)
	}))

	addr := defaultAddr
	if v := os.Getenv("POKER_LISTEN_ADDR"); v != "" {
		addr = v
	}

	log.Printf("[server] listening on %s", addr)
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil {
		log.Fatalf("[server] %v", err)
	}
}

// withCORS allows a browser-hosted front end served from a different
// origin to open the WebSocket upgrade request.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
