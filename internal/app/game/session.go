/*
Package game contains the core logic for the multiplayer session server.

This file defines the Controller, the event state machine. Each inbound event is
validated against current registry state, applied as a registry mutation, and
answered with one or more emissions through the gateway. Emissions always follow
the mutation they report, and a failed emission never rolls the mutation back.
*/
package game

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"arena/internal/pkg/errs"
	"arena/internal/pkg/logx"
	"arena/internal/pkg/randx"
)

// gameStartMessage is the notice sent to a room when its game begins.
const gameStartMessage = "The game starts soon"

// roomNameAttempts bounds how many generated names a create-room request will
// try before giving up on the practically unreachable collision case.
const roomNameAttempts = 3

// Controller dispatches inbound events against the registry and emits results
// through the gateway. It holds no per-connection state of its own: a
// connection's state is implicit in the registry's contents.
type Controller struct {
	registry *Registry
	gateway  Gateway
	logger   zerolog.Logger
}

// NewController constructs a Controller over the given registry and gateway.
func NewController(registry *Registry, gateway Gateway) *Controller {
	return &Controller{
		registry: registry,
		gateway:  gateway,
		logger:   logx.Logger().With().Str("component", "Controller").Logger(),
	}
}

// Dispatch decodes one raw client message and routes it to the matching
// handler. Unknown event types and undecodable envelopes are logged and
// dropped; malformed payloads of known types answer with an error event.
func (c *Controller) Dispatch(connID string, raw []byte) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		c.logger.Warn().Err(err).Str("conn_id", connID).Msg("Client sent invalid JSON.")
		return
	}

	switch in.Type {
	case TypeCreateRoom:
		c.HandleCreateRoom(connID)

	case TypeJoinRoom:
		var p RoomPayload
		if !c.decodePayload(connID, in.Payload, &p) {
			return
		}
		c.HandleJoinRoom(connID, p.RoomName)

	case TypeGameStart:
		var p RoomPayload
		if !c.decodePayload(connID, in.Payload, &p) {
			return
		}
		c.HandleGameStart(connID, p.RoomName)

	case TypeGameInit:
		var p RoomPayload
		if !c.decodePayload(connID, in.Payload, &p) {
			return
		}
		c.HandleGameInit(connID, p.RoomName)

	case TypeMove:
		var p MovePayload
		if !c.decodePayload(connID, in.Payload, &p) {
			return
		}
		c.HandleMove(connID, p.RoomID, p.X, p.Y, p.Z)

	default:
		c.logger.Warn().Str("conn_id", connID).Str("event_type", in.Type).Msg("Client sent unsupported event type.")
	}
}

func (c *Controller) decodePayload(connID string, raw json.RawMessage, dst any) bool {
	// A missing payload means zero values; the per-event validation decides
	// whether that is acceptable.
	if len(raw) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn().Err(err).Str("conn_id", connID).Msg("Client sent malformed payload.")
		c.emitError(connID, errs.NewError(errs.ErrInvalidParams))
		return false
	}
	return true
}

// HandleCreateRoom generates a fresh room name, creates the room, adds the
// requesting connection as its first player, and answers with the room id and
// player count.
func (c *Controller) HandleCreateRoom(connID string) {
	var room *Room
	for attempt := 0; attempt < roomNameAttempts; attempt++ {
		name, err := randx.RoomName()
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to generate room name.")
			c.emitError(connID, errs.NewError(errs.ErrUnknown))
			return
		}

		created, cerr := c.registry.CreateRoom(name)
		if cerr == nil {
			room = created
			break
		}
	}

	if room == nil {
		c.emitError(connID, errs.NewError(errs.ErrDuplicateRoom))
		return
	}

	players, cerr := c.registry.AddPlayer(connID, room.Name())
	if cerr != nil {
		c.emitError(connID, cerr)
		return
	}

	c.gateway.ToConn(connID, Event{
		Type:    TypeRoomCreated,
		Payload: RoomCreatedPayload{RoomID: room.Name(), Players: players},
	})
}

// HandleJoinRoom adds the requesting connection to the named room, notifies the
// whole room of the newcomer, and confirms the join to the requester alone.
func (c *Controller) HandleJoinRoom(connID, roomName string) {
	if roomName == "" {
		c.emitError(connID, errs.NewError(errs.ErrMissingRoomName))
		return
	}

	players, cerr := c.registry.AddPlayer(connID, roomName)
	if cerr != nil {
		c.emitError(connID, cerr)
		return
	}

	c.gateway.ToRoom(roomName, Event{
		Type:    TypePlayerJoined,
		Payload: PlayerJoinedPayload{ID: connID, Players: players},
	})
	c.gateway.ToConn(connID, Event{
		Type:    TypeJoinedRoom,
		Payload: JoinedRoomPayload{ID: roomName, Players: players},
	})
}

// HandleGameStart validates the named room and, on success, resets positions
// and camps across the entire registry, then notifies the named room. The
// registry-wide reset is the contract clients depend on, not a per-room one.
func (c *Controller) HandleGameStart(connID, roomName string) {
	if cerr := c.registry.StartGame(roomName); cerr != nil {
		c.emitError(connID, cerr)
		return
	}

	c.gateway.ToRoom(roomName, Event{
		Type:    TypeGameStarted,
		Payload: GameStartedPayload{ID: connID, Message: gameStartMessage},
	})
}

// HandleGameInit answers the requester with the named room's full player list.
// A missing room is not an error: the list is simply null.
func (c *Controller) HandleGameInit(connID, roomName string) {
	players, _ := c.registry.RoomPlayers(roomName)

	c.gateway.ToConn(connID, Event{
		Type:    TypeInitPlayer,
		Payload: InitPlayerPayload{ID: connID, Players: players},
	})
}

// HandleMove records the connection's reported position and relays it to every
// other connected client. A connection that is not a member of the identified
// room is silently dropped: no error event, no mutation, no broadcast.
func (c *Controller) HandleMove(connID, roomID string, x, y, z float64) {
	if !c.registry.MovePlayer(roomID, connID, x, y, z) {
		return
	}

	c.gateway.BroadcastExcept(connID, Event{
		Type:    TypeUpdate,
		Payload: UpdatePayload{ID: connID, X: x, Y: y, Z: z},
	})
}

// HandleDisconnect removes the connection's player from whatever room holds it
// and notifies that room. A connection that joined no room disconnects without
// any emission.
func (c *Controller) HandleDisconnect(connID string) {
	roomName, players, ok := c.registry.RemovePlayer(connID)
	if !ok {
		return
	}

	c.gateway.ToRoom(roomName, Event{
		Type:    TypePlayerDisconnected,
		Payload: PlayerDisconnectedPayload{ID: connID, Players: players},
	})
}

// emitError surfaces a validation failure to the originating connection only.
// Errors never mutate registry state and never reach other connections.
func (c *Controller) emitError(connID string, cerr *errs.CustomError) {
	c.gateway.ToConn(connID, Event{
		Type:    TypeError,
		Payload: ErrorPayload{Code: cerr.Code, Message: cerr.Message},
	})
}
