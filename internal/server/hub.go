package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/KaramelBytes/bikedash/internal/dataset"
	"github.com/gorilla/websocket"
)

const (
	eventHello    = "hello"
	eventReloaded = "dataset_reloaded"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Event is pushed to websocket subscribers.
type Event struct {
	Type     string    `json:"type"`
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	Rejected int       `json:"rejected_rows"`
	Min      string    `json:"min,omitempty"`
	Max      string    `json:"max,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
}

func newEvent(typ string, ds *dataset.Dataset) Event {
	ev := Event{Type: typ, Source: ds.Path, Records: len(ds.Records), Rejected: ds.Rejected, LoadedAt: ds.LoadedAt}
	if !ds.Empty() {
		ev.Min = ds.MinDate.Format("2006-01-02")
		ev.Max = ds.MaxDate.Format("2006-01-02")
	}
	return ev
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func newHub() *hub {
	return &hub{clients: make(map[*client]struct{})}
}

// add registers c and queues greeting as its first event.
func (h *hub) add(c *client, greeting Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	c.send <- greeting
	h.clients[c] = struct{}{}
	return true
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// broadcast drops subscribers whose send buffer is full.
func (h *hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("ws upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan Event, 8)}
	if !s.hub.add(c, newEvent(eventHello, s.Dataset())) {
		_ = conn.Close()
		return
	}
	go c.writePump()
	c.readPump(s.hub)
}

// readPump discards inbound messages and unregisters the client on close.
func (c *client) readPump(h *hub) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
