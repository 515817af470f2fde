package hub

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const (
	// writeWait is how long to wait for a write to complete
	writeWait = 10 * time.Second

	// pongWait is how long to wait for a pong response
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is the maximum inbound message size allowed
	maxMessageSize = 16 * 1024

	// sendBuffer is the per-client queue length
	sendBuffer = 64
)

// Client represents a single websocket connection
type Client struct {
	ID        string
	Connected time.Time

	hub  *Hub
	conn *websocket.Conn
	send chan Message

	mu      sync.Mutex
	closed  bool
	dropped atomic.Uint64
}

func newClient(h *Hub, id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:        id,
		Connected: time.Now(),
		hub:       h,
		conn:      conn,
		send:      make(chan Message, sendBuffer), // Buffered channel for backpressure
	}
}

// Send queues a message for this client. A full queue drops the message
// rather than blocking the caller; frames are latest-value anyway.
// It reports whether the message was queued.
func (c *Client) Send(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

// Cookie returns a cookie from the upgrade request, or "" if absent.
func (c *Client) Cookie(name string) string {
	return c.conn.Cookies(name)
}

// Dropped returns how many messages were discarded for a full queue.
func (c *Client) Dropped() uint64 {
	return c.dropped.Load()
}

// close shuts the send queue; the write pump then closes the socket.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// run starts the client's write pump and blocks in the read pump.
func (c *Client) run() {
	go c.writePump()
	c.readPump() // Blocks until connection closes
}

// readPump reads messages from the websocket connection and hands them to
// the hub. It also detects disconnection.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.hub.received.Add(1)
		c.hub.dispatch(c, data)
	}
}

// writePump writes messages to the websocket connection
// Only this goroutine writes to the connection - no race conditions!
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel - send close frame
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Determine websocket message type
			wsType := websocket.TextMessage
			if message.Type == BinaryMessage {
				wsType = websocket.BinaryMessage
			}

			if err := c.conn.WriteMessage(wsType, message.Data); err != nil {
				return
			}
			c.hub.sent.Add(1)

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
