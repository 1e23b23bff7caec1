package socket

import (
	"context"
	"encoding/json"
	"sync"

	"noteful/pkg/logger"
)

const (
	NoteCreatedType   = "note_created"
	NoteUpdatedType   = "note_updated"
	NoteDeletedType   = "note_deleted"
	FolderCreatedType = "folder_created"
	FolderUpdatedType = "folder_updated"
	FolderDeletedType = "folder_deleted"

	ResourceNotes   = "notes"
	ResourceFolders = "folders"
)

// Event is one change notification pushed to subscribers.
type Event struct {
	Type     string          `json:"type"`
	Resource string          `json:"resource"`
	ID       int64           `json:"id"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// Hub fans change events out to every connected client. A nil *Hub is a
// valid, disabled hub.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns client membership until ctx is cancelled, then disconnects
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case evt := <-h.broadcast:
			payload, err := json.Marshal(evt)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling event: %v", err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				if !client.wants(evt.Resource) {
					continue
				}
				select {
				case client.Send <- payload:
				default:
					// The client is lagging; drop it rather than block the hub.
					logger.Sugar.Warnf("Client %s send buffer is full, disconnecting", client.ID)
					delete(h.clients, client)
					close(client.Send)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) register(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// Publish queues an event for delivery without blocking the caller.
func (h *Hub) Publish(evtType, resource string, id int64, v any) {
	if h == nil {
		return
	}
	evt := Event{Type: evtType, Resource: resource, ID: id}
	if v != nil {
		payload, err := json.Marshal(v)
		if err != nil {
			logger.Sugar.Errorf("Error marshalling %s payload: %v", evtType, err)
			return
		}
		evt.Payload = payload
	}

	select {
	case h.broadcast <- evt:
	default:
		logger.Sugar.Warnf("Change feed is full, dropping %s for %s %d", evtType, resource, id)
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
