package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cardRevealServer/config"
	"cardRevealServer/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message is the envelope for every server -> client frame.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// ClientMessage is the envelope for client -> server frames.
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client is one connected presentation client.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	mu     sync.Mutex
	closed bool
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// sendJSON queues a message for this client only.
func (c *Client) sendJSON(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("client %s is closed", c.ID)
	}
	select {
	case c.Send <- data:
		return nil
	default:
		return fmt.Errorf("client %s send buffer full", c.ID)
	}
}

// Hub fans engine messages out to every connected client, in order.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	count   atomic.Int64

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	clientIDCounter atomic.Int64
	onCount         func(int)
	log             *zap.SugaredLogger
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, config.WSSendQueueSize),
		done:       make(chan struct{}),
		onCount:    func(int) {},
		log:        logger.Named("ws"),
	}
}

// OnClientCount registers a callback for connection count changes.
func (h *Hub) OnClientCount(fn func(int)) {
	if fn != nil {
		h.onCount = fn
	}
}

// Run is the central dispatcher. It returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info("🚀 Presentation hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.close()
			}
			h.mu.Unlock()
			h.setCount(0)
			h.log.Info("🛑 Presentation hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.setCount(n)
			h.log.Infof("✅ Client registered: %s (Total: %d)", client.ID, n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.setCount(n)
			h.log.Infof("👋 Client unregistered: %s (Total: %d)", client.ID, n)

		case data := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- data:
				default:
					h.log.Warnf("⚠️  Client %s send buffer full, skipping message", client.ID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) setCount(n int) {
	h.count.Store(int64(n))
	h.onCount(n)
}

// Broadcast queues msg for every client. It blocks only while the queue is
// full and gives up once the hub has stopped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Errorf("❌ Failed to marshal %s message: %v", msg.Type, err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Register adds a client; it returns false if the hub is not running.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) newClient(conn *websocket.Conn) *Client {
	id := h.clientIDCounter.Add(1)
	return &Client{
		ID:   fmt.Sprintf("client-%d", id),
		Conn: conn,
		Send: make(chan []byte, config.WSSendQueueSize),
	}
}

// writePump sends queued messages and keeps the connection alive with pings.
func (h *Hub) writePump(c *Client) {
	ticker := time.NewTicker(config.WSPingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WSWriteDeadline))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.log.Warnf("❌ Write error for client %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WSWriteDeadline))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes client frames and hands them to handle until the
// connection drops.
func (h *Hub) readPump(c *Client, handle func(*Client, ClientMessage)) {
	defer func() {
		h.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(config.WSReadDeadline))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(config.WSReadDeadline))
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warnf("❌ Read error for client %s: %v", c.ID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Warnf("❌ Failed to parse message from client %s: %v", c.ID, err)
			continue
		}
		handle(c, msg)
	}
}
