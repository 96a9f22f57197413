package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/annihlj/AutomationFit/internal/model"
)

// EventType defines the type of feed event.
type EventType string

const (
	EventAssessmentScored EventType = "assessment_scored"
)

// Event is the feed envelope format.
type Event struct {
	ID      string          `json:"id"`
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ScoredPayload is the payload of an assessment_scored event.
type ScoredPayload struct {
	AssessmentID string             `json:"assessmentId"`
	Total        *model.TotalResult `json:"total"`
}

// Hub fans recompute events out to comparison-dashboard watchers.
type Hub struct {
	watchers map[*Connection]bool
	mu       sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Event
}

// Connection represents one connected watcher.
type Connection struct {
	Send chan []byte
	hub  *Hub
}

// NewHub creates a hub and starts its run loop.
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Event, 64),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.watchers[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.watchers[conn] {
				delete(h.watchers, conn)
				close(conn.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("marshal feed event: %v", err)
				continue
			}
			h.mu.RLock()
			for conn := range h.watchers {
				select {
				case conn.Send <- data:
				default:
					// Slow watcher: drop the event rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register attaches a new watcher connection.
func (h *Hub) Register(conn *Connection) {
	conn.hub = h
	h.register <- conn
}

// Unregister detaches a watcher connection.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// AssessmentScored implements service.Broadcaster: it announces a freshly
// recomputed assessment to every watcher.
func (h *Hub) AssessmentScored(assessmentID string, total *model.TotalResult) {
	payload, err := json.Marshal(ScoredPayload{AssessmentID: assessmentID, Total: total})
	if err != nil {
		log.Printf("marshal scored payload: %v", err)
		return
	}
	h.broadcast <- &Event{
		ID:      uuid.New().String(),
		Type:    EventAssessmentScored,
		Payload: payload,
	}
}
