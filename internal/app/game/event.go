/*
Package game contains the core logic for the multiplayer session server.

This file defines the wire-level event vocabulary: inbound event names and payloads
sent by clients, and outbound event names and payloads broadcast back to them.
*/
package game

import (
	"encoding/json"

	"arena/internal/app/player"
)

// Inbound event types (client to server).
const (
	TypeCreateRoom = "create-room"
	TypeJoinRoom   = "join-room"
	TypeGameStart  = "game-start"
	TypeGameInit   = "game-init"
	TypeMove       = "move"
)

// Outbound event types (server to client/room).
const (
	TypeRoomCreated        = "room-created"
	TypePlayerJoined       = "player-joined"
	TypeJoinedRoom         = "joined-room"
	TypeGameStarted        = "game-started"
	TypeInitPlayer         = "init-player"
	TypeUpdate             = "update"
	TypePlayerDisconnected = "player-disconnected"
	TypeError              = "error"
)

// Inbound is the envelope for every client message: a type tag plus a
// type-specific payload left raw until the dispatcher knows how to decode it.
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is the envelope for every server message.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// RoomPayload carries the room name for join-room, game-start and game-init.
type RoomPayload struct {
	RoomName string `json:"roomName"`
}

// MovePayload carries a position report.
type MovePayload struct {
	RoomID string  `json:"roomId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
}

// RoomCreatedPayload answers a create-room request.
type RoomCreatedPayload struct {
	RoomID  string `json:"roomId"`
	Players int    `json:"players"`
}

// PlayerJoinedPayload is broadcast to a room when a new player joins it.
type PlayerJoinedPayload struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

// JoinedRoomPayload confirms a join to the joining connection alone.
type JoinedRoomPayload struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

// GameStartedPayload is broadcast to the starting room.
type GameStartedPayload struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// InitPlayerPayload answers a game-init request with the room's full player
// list. Players is null when the named room does not exist.
type InitPlayerPayload struct {
	ID      string          `json:"id"`
	Players []player.Player `json:"players"`
}

// UpdatePayload relays one player's position report to other connections.
type UpdatePayload struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

// PlayerDisconnectedPayload is broadcast to a room when one of its players disconnects.
type PlayerDisconnectedPayload struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

// ErrorPayload carries a validation failure back to the originating connection only.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
