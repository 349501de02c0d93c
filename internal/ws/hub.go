package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/logger"
)

// Message is the envelope written to live feed clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Hub fans economy events out to every connected dashboard client.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	// closed when Run returns so late register/unregister calls do not block
	done chan struct{}

	mu      sync.RWMutex
	clients map[*Client]struct{}

	log *slog.Logger
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		log:        logger.With("component", "ws"),
	}
}

// Run owns the client set until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			// ready is always the first frame a client sees
			if msg, err := encodeReady(c.UserID); err == nil {
				c.Send <- msg
			}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					// slow consumer
					delete(h.clients, c)
					close(c.Send)
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Publish implements service.Publisher. It never blocks the caller.
func (h *Hub) Publish(ev domain.Event) {
	b, err := json.Marshal(Message{Type: "event", Data: ev})
	if err != nil {
		h.log.Error("marshal event", "error", err)
		return
	}
	select {
	case h.broadcast <- b:
	default:
		h.log.Warn("live feed backlog full, dropping event", "type", ev.Type)
	}
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
