package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wordwall/backend/internal/metrics"
)

// ErrClientClosed is returned when registering a client that has already closed.
var ErrClientClosed = errors.New("client is closed")

// DefaultSendBuffer is the number of frames queued per client before the
// client is considered failed and dropped.
const DefaultSendBuffer = 256

// ClientState is the lifecycle state of a connection.
type ClientState int

const (
	StatePending ClientState = iota
	StateOpen
	StateClosed
)

func (s ClientState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("ClientState(%d)", int(s))
	}
}

// Client represents a live-update connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu    sync.Mutex
	state ClientState
}

// NewClient creates a pending client for the given connection.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	size := DefaultSendBuffer
	if hub != nil && hub.sendBuffer > 0 {
		size = hub.sendBuffer
	}
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, size),
	}
}

// Send queues a frame for the client. It reports false, and closes the
// client, when the frame cannot be queued.
func (c *Client) Send(data []byte) bool {
	queued, _ := c.enqueue(data)
	return queued
}

// enqueue queues a frame. overflowed is true only when this call closed the
// client because its buffer was full.
func (c *Client) enqueue(data []byte) (queued, overflowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return false, false
	}

	select {
	case c.send <- data:
		return true, false
	default:
		// Buffer full, close the client
		c.closeLocked()
		return false, true
	}
}

// Close closes the client. Closing twice is a no-op.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.state == StateClosed {
		return
	}
	c.state = StateClosed
	close(c.send)
}

func (c *Client) open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return ErrClientClosed
	}
	c.state = StateOpen
	return nil
}

// State returns the client's lifecycle state.
func (c *Client) State() ClientState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsClosed returns true if the client is closed.
func (c *Client) IsClosed() bool {
	return c.State() == StateClosed
}

// Conn returns the underlying WebSocket connection.
func (c *Client) Conn() *websocket.Conn {
	return c.conn
}

// SendChan returns the send channel for the client.
func (c *Client) SendChan() <-chan []byte {
	return c.send
}

// Hub owns the open connections in registration order.
type Hub struct {
	logger     *slog.Logger
	metrics    *metrics.WebSocketMetrics
	sendBuffer int

	mu      sync.RWMutex
	clients []*Client
}

// HubConfig holds optional dependencies for the hub.
type HubConfig struct {
	Logger     *slog.Logger
	Metrics    *metrics.WebSocketMetrics
	SendBuffer int
}

// NewHub creates an empty hub.
func NewHub(config HubConfig) *Hub {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.SendBuffer <= 0 {
		config.SendBuffer = DefaultSendBuffer
	}
	return &Hub{
		logger:     config.Logger,
		metrics:    config.Metrics,
		sendBuffer: config.SendBuffer,
	}
}

// Register opens the client and appends it to the open set.
func (h *Hub) Register(client *Client) error {
	if err := client.open(); err != nil {
		return err
	}

	h.mu.Lock()
	h.clients = append(h.clients, client)
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ActiveConnections.Inc()
	}
	h.logger.Info("connection accepted for status updates", "clients", count)
	return nil
}

// Unregister removes the client from the open set and closes it.
// Unregistering a client that is not registered is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	removed := false
	for i, c := range h.clients {
		if c == client {
			h.clients = append(h.clients[:i:i], h.clients[i+1:]...)
			removed = true
			break
		}
	}
	count := len(h.clients)
	h.mu.Unlock()

	if removed {
		client.Close()
		if h.metrics != nil {
			h.metrics.ActiveConnections.Dec()
		}
		h.logger.Info("connection closed", "clients", count)
	}
}

// Broadcast encodes payload as JSON and queues it for every open client in
// registration order. A client that cannot take the frame is dropped without
// affecting delivery to the others. It returns the number of clients reached.
func (h *Hub) Broadcast(payload any) (int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode broadcast: %w", err)
	}

	h.mu.RLock()
	clients := make([]*Client, len(h.clients))
	copy(clients, h.clients)
	h.mu.RUnlock()

	delivered, dropped := 0, 0
	var failed []*Client
	for _, client := range clients {
		queued, overflowed := client.enqueue(data)
		switch {
		case queued:
			delivered++
		case overflowed:
			dropped++
			failed = append(failed, client)
		default:
			failed = append(failed, client)
		}
	}

	for _, client := range failed {
		h.Unregister(client)
	}

	if h.metrics != nil {
		h.metrics.Broadcasts.Inc()
		h.metrics.Deliveries.Add(float64(delivered))
		h.metrics.DroppedClients.Add(float64(dropped))
	}
	h.logger.Debug("sent data to active websockets", "delivered", delivered, "dropped", dropped)

	return delivered, nil
}

// ClientCount returns the number of open clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes every client and empties the hub.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = nil
	h.mu.Unlock()

	for _, client := range clients {
		client.Close()
	}
	if h.metrics != nil {
		h.metrics.ActiveConnections.Set(0)
	}
}
