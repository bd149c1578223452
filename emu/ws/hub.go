// Package ws streams the virtual controller state to websocket clients, such
// as input display overlays.
package ws

import (
	"net/http"
	"slices"
	"sync"

	"github.com/go-faster/jx"
	"github.com/gorilla/websocket"

	"vpad/emu"
	"vpad/emu/log"
)

var modWS = log.NewModule("ws")

const sendQueueLen = 256

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Overlays are served from anywhere, often from a local file.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Hub keeps track of the connected clients and sends them each state it's
// given. Clients only receive, whatever they send is discarded.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Broadcast sends s to all clients. A client too slow to keep up is
// disconnected.
func (h *Hub) Broadcast(s emu.InputState) {
	e := jx.GetEncoder()
	s.Encode(e)
	msg := slices.Clone(e.Bytes())
	jx.PutEncoder(e)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			modWS.WarnZ("client too slow, disconnecting").String("addr", c.conn.RemoteAddr().String()).End()
			h.remove(c)
		}
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) numClients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the connection to a websocket and starts sending it the
// controller state, beginning with the last broadcast one.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		modWS.WarnZ("websocket upgrade failed").Error("err", err).End()
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendQueueLen)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	nclients := len(h.clients)
	h.mu.Unlock()

	modWS.InfoZ("client connected").
		String("addr", conn.RemoteAddr().String()).
		Int("clients", nclients).
		End()

	go c.writePump()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.remove(c)
	h.mu.Unlock()
	conn.Close()
	modWS.InfoZ("client disconnected").String("addr", conn.RemoteAddr().String()).End()
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.remove(c)
	}
}
