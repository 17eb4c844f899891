package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"arena/internal/app/bus"
	"arena/internal/app/game"
	"arena/internal/configs"
)

type wireEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newTestServer(t *testing.T) (*httptest.Server, *AppDeps) {
	t.Helper()

	registry := game.NewRegistry()
	hub := game.NewHub()
	eventBus := bus.New(hub, registry, nil)
	controller := game.NewController(registry, eventBus)

	deps := &AppDeps{
		Registry:   registry,
		Controller: controller,
		Hub:        hub,
		Config: &configs.AppConfig{
			Environment:    "development",
			Port:           8080,
			AllowedOrigins: []string{},
		},
	}

	srv := httptest.NewServer(Router(deps))
	t.Cleanup(srv.Close)

	return srv, deps
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, eventType string, payload any) {
	t.Helper()

	msg := map[string]any{"type": eventType}
	if payload != nil {
		msg["payload"] = payload
	}

	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", eventType, err)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn, wantType string) json.RawMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))

	var ev wireEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read (expecting %s): %v", wantType, err)
	}
	if ev.Type != wantType {
		t.Fatalf("expected event %q, got %q (payload %s)", wantType, ev.Type, ev.Payload)
	}

	return ev.Payload
}

func TestCreateAndJoinRoomOverWebSocket(t *testing.T) {
	srv, _ := newTestServer(t)

	creator := dialWS(t, srv)
	sendEvent(t, creator, "create-room", nil)

	var created struct {
		RoomID  string `json:"roomId"`
		Players int    `json:"players"`
	}
	json.Unmarshal(readEvent(t, creator, "room-created"), &created)

	if created.RoomID == "" || created.Players != 1 {
		t.Fatalf("unexpected room-created payload: %+v", created)
	}

	joiner := dialWS(t, srv)
	sendEvent(t, joiner, "join-room", map[string]string{"roomName": created.RoomID})

	// The whole room, including the joiner, sees the new player count.
	var joined struct {
		ID      string `json:"id"`
		Players int    `json:"players"`
	}
	json.Unmarshal(readEvent(t, creator, "player-joined"), &joined)
	if joined.Players != 2 {
		t.Fatalf("creator saw wrong count: %+v", joined)
	}

	json.Unmarshal(readEvent(t, joiner, "player-joined"), &joined)
	if joined.Players != 2 {
		t.Fatalf("joiner saw wrong count: %+v", joined)
	}

	// The joiner alone also gets the confirmation carrying the room id.
	var confirm struct {
		ID      string `json:"id"`
		Players int    `json:"players"`
	}
	json.Unmarshal(readEvent(t, joiner, "joined-room"), &confirm)
	if confirm.ID != created.RoomID || confirm.Players != 2 {
		t.Fatalf("unexpected joined-room payload: %+v", confirm)
	}
}

func TestJoinUnknownRoomOverWebSocket(t *testing.T) {
	srv, _ := newTestServer(t)

	conn := dialWS(t, srv)
	sendEvent(t, conn, "join-room", map[string]string{"roomName": "nope99"})

	var errPayload struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	json.Unmarshal(readEvent(t, conn, "error"), &errPayload)

	if errPayload.Message != "Room not found" {
		t.Fatalf("unexpected error payload: %+v", errPayload)
	}
}

func TestMoveRelayOverWebSocket(t *testing.T) {
	srv, _ := newTestServer(t)

	creator := dialWS(t, srv)
	sendEvent(t, creator, "create-room", nil)

	var created struct {
		RoomID string `json:"roomId"`
	}
	json.Unmarshal(readEvent(t, creator, "room-created"), &created)

	observer := dialWS(t, srv)
	sendEvent(t, observer, "join-room", map[string]string{"roomName": created.RoomID})
	readEvent(t, observer, "player-joined")
	readEvent(t, observer, "joined-room")
	readEvent(t, creator, "player-joined")

	sendEvent(t, creator, "move", map[string]any{
		"roomId": created.RoomID,
		"x":      1.0, "y": 2.0, "z": 3.0,
	})

	var update struct {
		ID string  `json:"id"`
		X  float64 `json:"x"`
		Y  float64 `json:"y"`
		Z  float64 `json:"z"`
	}
	json.Unmarshal(readEvent(t, observer, "update"), &update)

	if update.X != 1 || update.Y != 2 || update.Z != 3 {
		t.Fatalf("unexpected update payload: %+v", update)
	}
}

func TestDisconnectNotifiesRoomOverWebSocket(t *testing.T) {
	srv, _ := newTestServer(t)

	creator := dialWS(t, srv)
	sendEvent(t, creator, "create-room", nil)

	var created struct {
		RoomID string `json:"roomId"`
	}
	json.Unmarshal(readEvent(t, creator, "room-created"), &created)

	leaver := dialWS(t, srv)
	sendEvent(t, leaver, "join-room", map[string]string{"roomName": created.RoomID})
	readEvent(t, creator, "player-joined")

	leaver.Close()

	var gone struct {
		ID      string `json:"id"`
		Players int    `json:"players"`
	}
	json.Unmarshal(readEvent(t, creator, "player-disconnected"), &gone)

	if gone.Players != 1 {
		t.Fatalf("unexpected player-disconnected payload: %+v", gone)
	}
}

func TestHealthAndRoomListing(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := srv.Client().Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		t.Fatalf("health status %d", res.StatusCode)
	}

	creator := dialWS(t, srv)
	sendEvent(t, creator, "create-room", nil)
	readEvent(t, creator, "room-created")

	res2, err := srv.Client().Get(srv.URL + "/api/rooms")
	if err != nil {
		t.Fatalf("rooms request: %v", err)
	}
	defer res2.Body.Close()

	var body struct {
		Data struct {
			Rooms []struct {
				Name    string `json:"name"`
				Players int    `json:"players"`
			} `json:"rooms"`
			Connections int `json:"connections"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res2.Body).Decode(&body); err != nil {
		t.Fatalf("decode rooms response: %v", err)
	}

	if len(body.Data.Rooms) != 1 || body.Data.Rooms[0].Players != 1 {
		t.Fatalf("unexpected rooms listing: %+v", body.Data)
	}
	if body.Data.Connections != 1 {
		t.Fatalf("expected 1 connection, got %d", body.Data.Connections)
	}
}
