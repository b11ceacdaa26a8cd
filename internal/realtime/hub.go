package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"worknest-console/internal/logger"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Event tells open consoles that an entity changed and their screens may be stale.
type Event struct {
	Type   string    `json:"type"`
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     int64     `json:"id,omitempty"`
	By     int64     `json:"by"`
	At     time.Time `json:"at"`
}

// TypePresence marks a console joining the company channel.
const TypePresence = "presence"

// Hub maintains active console connections per company and broadcasts events to them.
type Hub struct {
	mu               sync.RWMutex
	companyToClients map[int64]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{companyToClients: make(map[int64]map[Client]struct{})}
}

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = NewHub()
	})
	return hubInstance
}

// Register adds a client under a company ID.
func (h *Hub) Register(companyID int64, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.companyToClients[companyID]; !ok {
		h.companyToClients[companyID] = make(map[Client]struct{})
	}
	h.companyToClients[companyID][client] = struct{}{}
}

// Unregister removes a client; if the company has no more clients, cleans up map.
func (h *Hub) Unregister(companyID int64, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.companyToClients[companyID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.companyToClients, companyID)
		}
	}
}

// Connections counts the clients registered for a company.
func (h *Hub) Connections(companyID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.companyToClients[companyID])
}

// clients snapshots the company's clients so sends happen without the lock.
func (h *Hub) clients(companyID int64) []Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Client, 0, len(h.companyToClients[companyID]))
	for c := range h.companyToClients[companyID] {
		out = append(out, c)
	}
	return out
}

// Broadcast sends a message to all clients of a company and returns how many
// accepted it. Failed clients are left for their handler to clean up.
func (h *Hub) Broadcast(companyID int64, message []byte) int {
	sent := 0
	for _, c := range h.clients(companyID) {
		if c.Send(message) {
			sent++
		}
	}
	return sent
}

// Publish encodes event and broadcasts it to the company.
func (h *Hub) Publish(companyID int64, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Get().Error().Err(err).Str("type", event.Type).Msg("encode realtime event")
		return
	}
	h.Broadcast(companyID, payload)
}
