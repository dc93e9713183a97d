package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"auditorium/internal/room"
	"auditorium/internal/signaling"
)

func startHub(t *testing.T) (*signaling.Hub, *room.Registry) {
	t.Helper()
	reg := room.NewRegistry(8)
	hub := signaling.NewHub(reg, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub, reg
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRoomCodeHandler(t *testing.T) {
	reg := room.NewRegistry(8)
	handler := RoomCode(reg)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/room-code", nil))

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parts := strings.Split(body["roomId"], "-"); len(parts) != 3 {
		t.Errorf("roomId = %q, want word code", body["roomId"])
	}

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/room-code?kind=token", nil))
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body["roomId"]) != 36 {
		t.Errorf("token = %q, want uuid", body["roomId"])
	}
}

func TestServeWsJoinRoundTrip(t *testing.T) {
	hub, reg := startHub(t)

	ts := httptest.NewServer(ServeWs(hub, nil))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	join := map[string]any{
		"type":   "join-room",
		"roomId": "lobby",
		"payload": map[string]any{
			"participant": map[string]any{"id": "p1", "name": "Ana", "color": "#3af"},
		},
	}
	if err := conn.WriteJSON(join); err != nil {
		t.Fatalf("write join: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got struct {
		Type    string `json:"type"`
		RoomID  string `json:"roomId"`
		Payload struct {
			IsHost bool   `json:"isHost"`
			HostID string `json:"hostId"`
		} `json:"payload"`
	}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "room-joined" || got.RoomID != "lobby" {
		t.Errorf("got %+v, want room-joined for lobby", got)
	}
	if !got.Payload.IsHost || got.Payload.HostID != "p1" {
		t.Errorf("payload = %+v, want p1 as host", got.Payload)
	}
	if !reg.Has("lobby") {
		t.Error("room not registered")
	}
}

func TestServeWsOriginRejected(t *testing.T) {
	hub, _ := startHub(t)

	ts := httptest.NewServer(ServeWs(hub, []string{"https://venue.example"}))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	header := http.Header{"Origin": []string{"https://evil.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		conn.Close()
		t.Fatal("dial succeeded despite disallowed origin")
	}
	if resp != nil {
		resp.Body.Close()
	}
}
