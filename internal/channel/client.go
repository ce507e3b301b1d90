package channel

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tilepad/twitch-inspector/internal/logging"
	"github.com/tilepad/twitch-inspector/internal/protocol"
)

const (
	// Time allowed to write a message to the backend
	writeWait = 10 * time.Second

	// Buffer for decoded inbound messages. Delivery order is
	// preserved regardless of the buffer size; this only decouples
	// the read loop from a momentarily busy consumer.
	inboundBuffer = 16
)

// Keepalive timing. Variables rather than constants so tests can
// shorten the window.
var (
	// Time allowed between inbound frames before the connection is
	// considered dead
	pongWait = 60 * time.Second

	// How often an idle connection is pinged. Must be shorter than
	// pongWait so the pong answer lands before the deadline.
	pingInterval = 54 * time.Second
)

// Client is a connected plugin channel.
type Client struct {
	conn *websocket.Conn

	messages chan protocol.Message
	done     chan struct{}

	closeOnce sync.Once
	writeMu   sync.Mutex
}

// Dial connects to the plugin backend at the given WebSocket endpoint
// (e.g. "ws://127.0.0.1:59372/plugin/com.tilepad.twitch/inspector")
// and starts the read loop.
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, NewDialError(endpoint, err)
	}

	logging.LogChannelEvent(endpoint, "connected")

	c := &Client{
		conn:     conn,
		messages: make(chan protocol.Message, inboundBuffer),
		done:     make(chan struct{}),
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	conn.SetPingHandler(func(appData string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return err
		}
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
	})

	go c.readLoop()
	go c.pingLoop()

	return c, nil
}

// pingLoop keeps an otherwise idle connection alive. A session can
// legitimately sit without traffic for minutes (waiting on the
// authorize screen, for one); the pong answers refresh the read
// deadline via the pong handler.
func (c *Client) pingLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// Send encodes and writes a message to the backend.
func (c *Client) Send(msg protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return NewEncodeError(msg.MessageType(), err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return NewTransportError("failed to set write deadline", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return NewTransportError("failed to write message", err)
	}

	logging.LogChannelMessage("sent", string(msg.MessageType()), len(data))
	return nil
}

// Messages returns the inbound message stream. The channel is closed
// when the connection ends; messages are delivered in arrival order.
func (c *Client) Messages() <-chan protocol.Message {
	return c.messages
}

// Close shuts down the connection. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// readLoop decodes inbound frames and delivers them in order. It owns
// the messages channel and closes it on exit.
func (c *Client) readLoop() {
	defer close(c.messages)

	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Expected after Close
			default:
				logging.Debug("channel read ended", zap.Error(err))
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			// Malformed frames are logged and skipped, never fatal
			logging.Warn("dropping malformed channel message",
				zap.Error(err),
				zap.Int("length", len(data)),
			)
			continue
		}

		logging.LogChannelMessage("received", string(msg.MessageType()), len(data))

		select {
		case c.messages <- msg:
		case <-c.done:
			// Consumer is gone; drop the message
			return
		}
	}
}
