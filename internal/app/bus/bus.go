/*
Package bus implements the broadcast gateway: outbound events are delivered to
connections on this process through the hub and, when a Redis client is
configured, forwarded to every other process through a pub/sub channel so rooms
spanning processes still receive consistent broadcasts.

Delivery through Redis is at-least-once with no ordering guarantee across
processes. Each process tags its envelopes with a random origin id and ignores
its own on the subscribe side, since it already delivered them locally.
*/
package bus

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"arena/internal/app/game"
	"arena/internal/pkg/logx"
	"arena/internal/pkg/randx"
)

// Channel is the Redis pub/sub channel all processes share.
const Channel = "arena.events"

// Delivery scopes carried by envelopes.
const (
	scopeConn   = "conn"
	scopeRoom   = "room"
	scopeExcept = "except"
)

// envelope is the cross-process wire format for one emission.
type envelope struct {
	// Origin identifies the publishing process so it can skip its own envelopes.
	Origin string `json:"origin"`

	// Scope is one of conn, room or except.
	Scope string `json:"scope"`

	// Target is the connection id (conn scope) or room name (room scope).
	Target string `json:"target,omitempty"`

	// Sender is the connection excluded from delivery (except scope).
	Sender string `json:"sender,omitempty"`

	// Event is the marshaled outbound event.
	Event json.RawMessage `json:"event"`
}

// Sender is the local delivery surface the bus writes through, satisfied by
// the connection hub.
type Sender interface {
	// Send enqueues raw bytes to one local connection. Returns false if the
	// connection is unknown here or its queue is full.
	Send(connID string, data []byte) bool

	// SendExcept enqueues raw bytes to every local connection except the named one.
	SendExcept(exceptID string, data []byte)
}

// Memberships resolves a room name to the connection ids of its current
// players, satisfied by the room registry.
type Memberships interface {
	RoomMemberIDs(roomName string) []string
}

// Bus fans outbound events to local connections and, optionally, across
// processes through Redis. It satisfies game.Gateway.
type Bus struct {
	hub      Sender
	registry Memberships

	// rdb is nil in single-process deployments; the bus then delivers locally only.
	rdb *redis.Client

	origin string
	logger zerolog.Logger
}

// New constructs a Bus over the given hub and registry. rdb may be nil, in
// which case every emission stays within this process.
func New(hub Sender, registry Memberships, rdb *redis.Client) *Bus {
	origin := randx.ConnectionID()

	return &Bus{
		hub:      hub,
		registry: registry,
		rdb:      rdb,
		origin:   origin,
		logger:   logx.Logger().With().Str("component", "Bus").Str("origin", origin).Logger(),
	}
}

// ToConn delivers an event to a single connection, wherever it is hosted.
func (b *Bus) ToConn(connID string, ev game.Event) {
	data, ok := b.marshalEvent(ev)
	if !ok {
		return
	}

	delivered := b.hub.Send(connID, data)
	if !delivered && b.rdb == nil {
		b.logger.Warn().Str("conn_id", connID).Str("event_type", ev.Type).Msg("Dropped event for unknown or slow connection.")
	}

	b.publish(envelope{Scope: scopeConn, Target: connID, Event: data})
}

// ToRoom delivers an event to every current member of the named room.
func (b *Bus) ToRoom(roomName string, ev game.Event) {
	data, ok := b.marshalEvent(ev)
	if !ok {
		return
	}

	b.deliverRoomLocal(roomName, data)
	b.publish(envelope{Scope: scopeRoom, Target: roomName, Event: data})
}

// BroadcastExcept delivers an event to every connected client except the sender.
func (b *Bus) BroadcastExcept(senderID string, ev game.Event) {
	data, ok := b.marshalEvent(ev)
	if !ok {
		return
	}

	b.hub.SendExcept(senderID, data)
	b.publish(envelope{Scope: scopeExcept, Sender: senderID, Event: data})
}

// Run subscribes to the shared channel and delivers foreign envelopes to local
// connections until the context is canceled. It is a no-op without Redis.
func (b *Bus) Run(ctx context.Context) {
	if b.rdb == nil {
		b.logger.Info().Msg("No Redis configured; fan-out is local-only.")
		return
	}

	sub := b.rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	b.logger.Info().Str("channel", Channel).Msg("Subscribed to fan-out channel.")

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warn().Msg("Fan-out subscription channel closed.")
				return
			}
			b.handlePayload([]byte(msg.Payload))

		case <-ctx.Done():
			b.logger.Info().Msg("Fan-out subscriber stopped.")
			return
		}
	}
}

// handlePayload decodes one pub/sub payload and delivers it locally unless this
// process published it.
func (b *Bus) handlePayload(payload []byte) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		b.logger.Warn().Err(err).Msg("Discarding malformed fan-out envelope.")
		return
	}

	if env.Origin == b.origin {
		return
	}

	switch env.Scope {
	case scopeConn:
		b.hub.Send(env.Target, env.Event)

	case scopeRoom:
		b.deliverRoomLocal(env.Target, env.Event)

	case scopeExcept:
		b.hub.SendExcept(env.Sender, env.Event)

	default:
		b.logger.Warn().Str("scope", env.Scope).Msg("Discarding fan-out envelope with unknown scope.")
	}
}

// deliverRoomLocal sends data to each member of the named room hosted on this
// process. Members hosted elsewhere are reached through their own process's
// subscriber.
func (b *Bus) deliverRoomLocal(roomName string, data []byte) {
	for _, id := range b.registry.RoomMemberIDs(roomName) {
		b.hub.Send(id, data)
	}
}

func (b *Bus) marshalEvent(ev game.Event) ([]byte, bool) {
	data, err := json.Marshal(ev)
	if err != nil {
		b.logger.Error().Err(err).Str("event_type", ev.Type).Msg("Failed to marshal outbound event.")
		return nil, false
	}
	return data, true
}

// publish forwards an envelope to the other processes. Publish failures are
// logged and swallowed: an emission never fails the mutation it reports.
func (b *Bus) publish(env envelope) {
	if b.rdb == nil {
		return
	}

	env.Origin = b.origin

	payload, err := json.Marshal(env)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to marshal fan-out envelope.")
		return
	}

	if err := b.rdb.Publish(context.Background(), Channel, payload).Err(); err != nil {
		b.logger.Error().Err(err).Str("scope", env.Scope).Msg("Failed to publish fan-out envelope.")
	}
}
