package realtime

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	DefaultSendBuffer = 64
)

// Client is one live connection. Outbound messages pass through a bounded buffer
// drained by a single writer goroutine.
type Client struct {
	id         string
	principal  ports.Principal
	listenOnly bool
	send       chan []byte
	conn       *websocket.Conn
}

// NewClient returns a client that is not yet attached to a socket.
func NewClient(principal ports.Principal, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Client{
		id:        uuid.NewString(),
		principal: principal,
		send:      make(chan []byte, buffer),
	}
}

// NewListener returns an unauthenticated admin client that may only receive
// dispatch-channel events.
func NewListener(buffer int) *Client {
	c := NewClient(ports.Principal{Role: kernel.RoleAdmin}, buffer)
	c.listenOnly = true
	return c
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Principal() ports.Principal {
	return c.principal
}

func (c *Client) ListenOnly() bool {
	return c.listenOnly
}

// Messages exposes the outbound buffer. It is closed when the client leaves the hub.
func (c *Client) Messages() <-chan []byte {
	return c.send
}

// Reply queues msg for this connection only, dropping it when the buffer is full.
// It must not be called after the client has left the hub.
func (c *Client) Reply(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// writePump drains the send buffer to the socket and keeps the connection alive with pings.
func (c *Client) writePump(logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("write failed", "connId", c.id, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads frames until the peer goes away and passes each one to handle.
func (c *Client) readPump(ctx context.Context, logger *slog.Logger, handle func(context.Context, []byte)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Info("connection closed unexpectedly", "connId", c.id, "error", err)
			}
			return
		}
		handle(ctx, raw)
	}
}
