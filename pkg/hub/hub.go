package hub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/teslashibe/go-folio/internal/log"
	"github.com/teslashibe/go-folio/pkg/protocol"
)

// ErrClientNotFound is returned by SendTo for an unknown session.
var ErrClientNotFound = errors.New("hub: client not connected")

// Hub maintains the set of active clients and routes messages to them
type Hub struct {
	// Name for logging
	name   string
	logger *slog.Logger

	// Registered clients by session id
	clients map[string]*Client

	// Outbound messages for every client
	broadcast chan Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Guards clients for readers outside the loop
	mu sync.RWMutex

	// Callbacks
	cbMu         sync.RWMutex
	onConnect    func(*Client)
	onDisconnect func(*Client)
	onMessage    func(*Client, *protocol.Message)

	running  atomic.Bool
	received atomic.Uint64
	sent     atomic.Uint64
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the hub's logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a new Hub
func New(name string, opts ...Option) *Hub {
	h := &Hub{
		name:       name,
		logger:     log.L(),
		clients:    make(map[string]*Client),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("hub", name)
	return h
}

// OnConnect sets the callback run after a client registers.
func (h *Hub) OnConnect(fn func(*Client)) {
	h.cbMu.Lock()
	h.onConnect = fn
	h.cbMu.Unlock()
}

// OnDisconnect sets the callback run after a client's socket closes.
func (h *Hub) OnDisconnect(fn func(*Client)) {
	h.cbMu.Lock()
	h.onDisconnect = fn
	h.cbMu.Unlock()
}

// OnMessage sets the callback for inbound messages other than ping.
func (h *Hub) OnMessage(fn func(*Client, *protocol.Message)) {
	h.cbMu.Lock()
	h.onMessage = fn
	h.cbMu.Unlock()
}

// Run starts the hub's main loop and blocks until ctx is done.
// This should be called in a goroutine
func (h *Hub) Run(ctx context.Context) {
	h.running.Store(true)
	defer func() {
		h.mu.Lock()
		for id, client := range h.clients {
			client.close()
			delete(h.clients, id)
		}
		h.mu.Unlock()
		h.running.Store(false)
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client connected", "session", client.ID, "total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				client.close()
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client disconnected", "session", client.ID, "remaining", count, "dropped", client.Dropped())

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				client.Send(message)
			}
			h.mu.RUnlock()
		}
	}
}

// Serve runs one websocket connection until it closes. Each connection is
// its own session with a fresh id.
func (h *Hub) Serve(conn *websocket.Conn) {
	client := newClient(h, uuid.NewString(), conn)

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	h.cbMu.RLock()
	connect := h.onConnect
	h.cbMu.RUnlock()
	if connect != nil {
		connect(client)
	}

	client.run()

	h.cbMu.RLock()
	disconnect := h.onDisconnect
	h.cbMu.RUnlock()
	if disconnect != nil {
		disconnect(client)
	}
}

// remove asks the loop to drop a client.
func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
		c.close()
	}
}

// dispatch handles one inbound message. Pings are answered here.
func (h *Hub) dispatch(c *Client, data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		h.logger.Debug("parse error", "session", c.ID, "error", err)
		if reply, err := protocol.NewErrorMessage(err.Error()); err == nil {
			h.reply(c, reply)
		}
		return
	}

	if msg.Type == protocol.TypePing {
		ping, _ := msg.GetPingData()
		id := ""
		if ping != nil {
			id = ping.ID
		}
		if pong, err := protocol.NewPongMessage(id, msg.Timestamp, time.Now().UnixMilli()); err == nil {
			h.reply(c, pong)
		}
		return
	}

	h.cbMu.RLock()
	handle := h.onMessage
	h.cbMu.RUnlock()
	if handle != nil {
		handle(c, msg)
	}
}

func (h *Hub) reply(c *Client, m *protocol.Message) {
	out, err := Encode(m)
	if err != nil {
		return
	}
	c.Send(out)
}

// RegisterRoutes registers the WebSocket endpoint at path on a Fiber app
func (h *Hub) RegisterRoutes(app *fiber.App, path string) {
	// WebSocket upgrade middleware
	app.Use(path, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get(path, websocket.New(h.Serve))
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		// Broadcast channel full - drop message
		h.logger.Warn("broadcast channel full, dropping message")
	}
}

// BroadcastJSON encodes and broadcasts a JSON message
func (h *Hub) BroadcastJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(NewJSONMessage(data))
	return nil
}

// SendTo queues a message for one session.
func (h *Hub) SendTo(id string, msg Message) error {
	h.mu.RLock()
	client, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return ErrClientNotFound
	}
	client.Send(msg)
	return nil
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsRunning returns whether the hub is running
func (h *Hub) IsRunning() bool {
	return h.running.Load()
}

// Stats contains hub statistics
type Stats struct {
	Clients          int    `json:"clients"`
	MessagesReceived uint64 `json:"messages_received"`
	MessagesSent     uint64 `json:"messages_sent"`
}

// GetStats returns hub statistics
func (h *Hub) GetStats() Stats {
	return Stats{
		Clients:          h.ClientCount(),
		MessagesReceived: h.received.Load(),
		MessagesSent:     h.sent.Load(),
	}
}
