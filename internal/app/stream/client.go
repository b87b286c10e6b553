/*
Package stream bridges the ledger's event bus to live WebSocket consumers.

This file defines the Client struct, one active WebSocket connection. The
stream is one-way: the write pump pushes event frames and ping heartbeats,
and the read pump exists only to observe pongs and connection closure.
*/
package stream

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/codydotio/pulse/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	// Consumers have nothing meaningful to send upstream.
	maxMessageSize = 512

	// capacity of the per-client outbound frame queue.
	sendQueueSize = 256
)

// Client represents one active WebSocket stream connection.
type Client struct {
	hub *Hub

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// send is the buffered queue of frames waiting to go out.
	send chan []byte

	logger zerolog.Logger
}

// NewClient constructs a Client around an upgraded WebSocket connection.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		logger: logx.Logger().With().
			Str("component", "StreamClient").
			Str("remote_addr", conn.RemoteAddr().String()).
			Logger(),
	}
}

// sendFrame marshals a frame and queues it without blocking.
func (c *Client) sendFrame(frame Frame) {
	frameBytes, err := json.Marshal(frame)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error marshaling frame for client.")
		return
	}

	select {
	case c.send <- frameBytes:
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send queue full, dropping frame.")
	}
}

// ReadPump drains inbound traffic until the connection closes, keeping the
// pong deadline fresh. It unregisters the client on exit.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error.")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline.")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Stream connection closed unexpectedly.")
			}
			return
		}
	}
}

// WritePump moves frames from the send queue onto the wire and emits the
// ping heartbeat. It terminates when the queue is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump.")
		}
	}()

	for {
		select {
		case frameBytes, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline.")
				return
			}

			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message.")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, frameBytes); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing frame.")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping.")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing ping.")
				return
			}
		}
	}
}
