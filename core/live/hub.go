package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"flamtunes/logger"
	"flamtunes/model"

	"github.com/gorilla/websocket"
)

// Event is one message pushed to connected listeners.
type Event struct {
	Type      string          `json:"type"` // "now_playing"
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The player widget is served from anywhere; the stream carries only
	// public data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans playback changes out to connected listener pages. Clients never
// send anything meaningful upstream; their reads are drained only to detect
// disconnects.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// BroadcastNowPlaying pushes a playback change to every connected client.
func (h *Hub) BroadcastNowPlaying(entry *model.NowPlaying) {
	data, err := json.Marshal(entry)
	if err != nil {
		logger.Error("Failed to marshal now playing event", logger.ErrorField(err))
		return
	}
	event, err := json.Marshal(Event{
		Type:      "now_playing",
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		logger.Error("Failed to marshal live event", logger.ErrorField(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- event:
		default:
			// Slow client; drop the frame rather than stall the broadcast.
		}
	}
}

// ServeWS upgrades the connection and registers it with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", logger.ErrorField(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 8)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
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
