package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"auditorium/internal/room"
	"auditorium/internal/roomcode"
	"auditorium/internal/signaling"
)

// newUpgrader configures the websocket upgrader. An empty origin list
// allows every origin (development); otherwise the Origin header must
// match one of the entries.
func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
}

// ServeWs returns the handler that upgrades a request to a websocket and
// hands the connection to the hub.
func ServeWs(hub *signaling.Hub, allowedOrigins []string) http.HandlerFunc {
	upgrader := newUpgrader(allowedOrigins)

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "err", err)
			return
		}

		client := signaling.NewClient(hub, conn)
		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}

// Health returns a plain-text liveness handler.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Coordinator is healthy."))
	}
}

// RoomCode returns a handler that hands out a fresh room identifier not
// currently in use: a shareable word code by default, or an opaque token
// with ?kind=token.
func RoomCode(registry *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		if r.URL.Query().Get("kind") == "token" {
			id = roomcode.Token()
		} else {
			id = roomcode.Generate(registry.Has)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"roomId": id})
	}
}
