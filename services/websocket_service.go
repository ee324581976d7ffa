package services

import (
	"encoding/json"
	"sync"
	"time"

	"leads-service/metrics"
	"leads-service/models"

	"github.com/apex/log"
	"github.com/gorilla/websocket"
)

// LeadFeedHub fans captured leads out to connected dashboard clients.
// Broadcasts are best-effort: a slow or dead client is dropped, never
// blocking the capture path.
type LeadFeedHub struct {
	clients    map[*feedClient]bool
	broadcast  chan models.BroadcastMessage
	register   chan *feedClient
	unregister chan *feedClient
	mutex      sync.RWMutex
}

type feedClient struct {
	hub  *LeadFeedHub
	conn *websocket.Conn
	send chan []byte
	addr string
}

// NewLeadFeedHub creates the hub; run Start in a goroutine.
func NewLeadFeedHub() *LeadFeedHub {
	return &LeadFeedHub{
		clients:    make(map[*feedClient]bool),
		broadcast:  make(chan models.BroadcastMessage, 16),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

// Start runs the hub event loop.
func (h *LeadFeedHub) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			metrics.WebsocketClients.Inc()
			log.Infof("Lead feed client connected from %s", client.addr)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WebsocketClients.Dec()
			}
			h.mutex.Unlock()
			log.Infof("Lead feed client disconnected from %s", client.addr)

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Errorf("Failed to serialize feed message: %v", err)
				continue
			}
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
					metrics.WebsocketClients.Dec()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Stop disconnects all clients.
func (h *LeadFeedHub) Stop() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
		metrics.WebsocketClients.Dec()
	}
}

// RegisterClient attaches a new WebSocket connection to the hub.
func (h *LeadFeedHub) RegisterClient(conn *websocket.Conn, addr string) {
	client := &feedClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		addr: addr,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastLead pushes a freshly captured lead to all connected clients.
func (h *LeadFeedHub) BroadcastLead(lead *models.Lead) {
	message := models.BroadcastMessage{
		Type: "lead_captured",
		Data: lead,
	}
	select {
	case h.broadcast <- message:
	default:
		log.Warn("Lead feed broadcast queue full, dropping message")
	}
}

// ConnectedClients returns the number of attached clients.
func (h *LeadFeedHub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// readPump drains client messages until the connection closes.
func (c *feedClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("Lead feed read error from %s: %v", c.addr, err)
			}
			break
		}
	}
}

// writePump pushes hub messages and keepalive pings to the connection.
func (c *feedClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
