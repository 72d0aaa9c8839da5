package websocket

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SubmissionEvent is pushed to connected reviewers of an organization when
// a submission is created or reviewed.
type SubmissionEvent struct {
	Type         string `json:"type"`
	SubmissionID string `json:"submission_id"`
	TemplateID   string `json:"template_id"`
	Status       string `json:"status"`
	OrgID        uint   `json:"org_id"`
}

type client struct {
	conn  *websocket.Conn
	orgID uint
	send  chan SubmissionEvent
}

// Hub fans submission events out to the sockets of the matching org.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) Broadcast(event SubmissionEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.orgID != event.OrgID {
			continue
		}
		select {
		case c.send <- event:
		default:
			// Slow consumer; drop the event rather than block the hub.
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	close(c.send)
}

// Serve upgrades the request and streams events until the peer goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, orgID uint) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Failed to upgrade websocket:", err)
		return
	}

	c := &client{conn: ws, orgID: orgID, send: make(chan SubmissionEvent, 16)}
	h.add(c)

	go func() {
		defer func() {
			h.remove(c)
			ws.Close()
		}()
		for event := range c.send {
			if err := ws.WriteJSON(event); err != nil {
				return
			}
		}
	}()

	// Reader loop only consumes control frames; client messages are ignored.
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				ws.Close()
				return
			}
		}
	}()
}
