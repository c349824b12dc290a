package websocket

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event is one server-pushed notification: an upload finishing, an
// assignment being booked. Clients never send events back.
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of connected dashboard clients and fans events
// out to all of them.
type Hub struct {
	clients map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	events     chan Event

	mu     sync.RWMutex
	Logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		events:     make(chan Event, 256),
		Logger:     logger,
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.Logger.Info().Str("clientId", client.ID).Msg("WebSocket client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.Logger.Info().Str("clientId", client.ID).Msg("WebSocket client disconnected")

		case event := <-h.events:
			h.fanOut(event)
		}
	}
}

// Publish queues an event for all connected clients. It never blocks the
// caller: when the hub is saturated the event is dropped and logged.
func (h *Hub) Publish(eventType string, payload any) {
	event := Event{Type: eventType, Payload: payload, Timestamp: time.Now()}
	select {
	case h.events <- event:
	default:
		h.Logger.Warn().Str("type", eventType).Msg("Event queue full, dropping event")
	}
}

func (h *Hub) fanOut(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- event:
		default:
			h.Logger.Warn().Str("clientId", client.ID).Msg("Client send buffer full, dropping event")
		}
	}

	h.Logger.Debug().Str("type", event.Type).Int("clients", len(h.clients)).Msg("Broadcasted event")
}

// ClientCount reports connected clients, for the health endpoint.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
