// WebSocket hub — pushes a fresh state snapshot to every connected
// browser after each tick and each accepted intent, so the view never has
// to poll. Clients are write-only; the intent endpoints stay on HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/talgya/madangkara/internal/game"
)

// wsMessage is the envelope for everything pushed over the socket.
type wsMessage struct {
	Type    string `json:"type"` // "state" or "notification"
	Payload any    `json:"payload"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of connected clients and fans out messages.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

// NewHub creates an empty hub. Call Run in a goroutine before serving.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			slog.Debug("websocket client connected", "clients", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer: drop the connection rather than block the hub.
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// BroadcastState pushes a snapshot to all clients.
func (h *Hub) BroadcastState(s *game.State) {
	h.send("state", s)
}

// BroadcastNotification pushes a quest/achievement notification.
func (h *Hub) BroadcastNotification(n game.Notification) {
	h.send("notification", n)
}

func (h *Hub) send(kind string, payload any) {
	data, err := json.Marshal(wsMessage{Type: kind, Payload: payload})
	if err != nil {
		slog.Error("marshal broadcast", "type", kind, "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		// Hub backed up; this snapshot is superseded next tick anyway.
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection and registers the client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, 64)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames; its job is detecting disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
