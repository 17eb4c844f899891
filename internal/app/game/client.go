/*
Package game contains the core logic for the multiplayer session server.

This file defines the Client struct, representing an active WebSocket connection. It
manages the connection's lifecycle, the read and write pumps, heartbeat deadlines, and
cleanup when the connection closes.
*/
package game

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"arena/internal/pkg/logx"
	"arena/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 4096

	// sendQueueSize is the per-connection outbound buffer. Position relays for a
	// full arena arrive in bursts; a slow consumer past this depth gets dropped
	// rather than stalling the broadcast path.
	sendQueueSize = 256
)

// Client represents an active WebSocket connection. The connection id doubles
// as the player id for whatever room the connection joins.
type Client struct {
	id string

	conn *websocket.Conn

	controller *Controller

	hub *Hub

	// send is a buffered channel used to queue messages waiting to be written.
	// sendMu and closed guard it so a concurrent broadcast can never write to a
	// channel the cleanup path already closed.
	send   chan []byte
	sendMu sync.Mutex
	closed bool

	logger zerolog.Logger
}

// NewClient constructs a Client with a freshly generated connection id.
func NewClient(conn *websocket.Conn, controller *Controller, hub *Hub) *Client {
	id := randx.ConnectionID()

	return &Client{
		id:         id,
		conn:       conn,
		controller: controller,
		hub:        hub,
		send:       make(chan []byte, sendQueueSize),
		logger:     logx.Logger().With().Str("conn_id", id).Logger(),
	}
}

// ID returns the connection's identifier, stable for the connection's lifetime.
func (c *Client) ID() string {
	return c.id
}

// enqueue attempts to queue raw bytes for delivery. Returns false when the
// queue is full; the caller decides whether that is worth logging.
func (c *Client) enqueue(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// ReadPump reads messages from the WebSocket connection and dispatches them to
// the controller. It handles heartbeats (Pong) and performs cleanup when the
// connection closes for any reason.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.controller.Dispatch(c.id, messageBytes)
	}
}

// cleanupOnDisconnect runs when the read pump terminates: the connection is
// dropped from the hub, the disconnect event runs through the controller, and
// the socket is closed.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.hub.Unregister(c.id)
	c.controller.HandleDisconnect(c.id)
	c.closeSend()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// WritePump writes queued messages to the WebSocket connection and keeps the
// heartbeat alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one message pulled from the send channel.
// Returns true if the WritePump loop should continue, false if it should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping message to maintain the
// connection heartbeat. Returns false if the WritePump loop should terminate.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
