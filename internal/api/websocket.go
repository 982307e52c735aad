package api

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	MessageTypeConnected      = "connected"
	MessageTypeSquaresChanged = "squares_changed"
	MessageTypeConfigChanged  = "config_changed"

	pingInterval  = 30 * time.Second
	pongWait      = 60 * time.Second
	writeWait     = 10 * time.Second
	clientBacklog = 64
)

// Hub fans out store change notifications to connected WebSocket clients.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger
	mu       sync.RWMutex
	clients  map[*hubClient]struct{}
}

type hubClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Message is the JSON envelope sent to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// NewHub creates a hub. Browser upgrades are accepted only from allowedOrigins;
// requests without an Origin header (non-browser clients) are always accepted.
func NewHub(allowedOrigins []string, logger *log.Logger) *Hub {
	h := &Hub{
		logger:  logger.With("component", "ws"),
		clients: make(map[*hubClient]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// OnStoreChange implements StoreChangeSubscriber.
func (h *Hub) OnStoreChange(change StoreChange) {
	msgType := MessageTypeSquaresChanged
	if change.Kind == StoreChangeKindConfig {
		msgType = MessageTypeConfigChanged
	}

	data, err := json.Marshal(Message{Type: msgType, Data: change})
	if err != nil {
		h.logger.Error("Failed to marshal store change", "err", err)
		return
	}
	h.broadcast(data)
}

func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*hubClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.trySend(c, data)
	}
}

// trySend delivers without blocking; a client whose backlog is full is dropped.
// Sends happen under the read lock so removeClient cannot close the channel mid-send.
func (h *Hub) trySend(c *hubClient, data []byte) {
	h.mu.RLock()
	_, registered := h.clients[c]
	delivered := false
	if registered {
		select {
		case c.send <- data:
			delivered = true
		default:
		}
	}
	h.mu.RUnlock()

	if registered && !delivered {
		h.logger.Debug("Dropping slow client")
		h.removeClient(c)
	}
}

func (h *Hub) addClient(c *hubClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) removeClient(c *hubClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the connection and registers the client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Upgrade failed", "err", err)
		return
	}

	c := &hubClient{hub: h, conn: conn, send: make(chan []byte, clientBacklog)}
	if data, err := json.Marshal(Message{Type: MessageTypeConnected}); err == nil {
		c.send <- data
	}
	h.addClient(c)

	go c.writePump()
	go c.readPump()
}

// readPump discards client messages; it exists to notice disconnects and pongs.
func (c *hubClient) readPump() {
	defer c.hub.removeClient(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("Read error", "err", err)
			}
			return
		}
	}
}

// writePump owns the connection's writes and closes it on exit.
func (c *hubClient) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// One frame per message so every frame is a complete JSON document.
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
