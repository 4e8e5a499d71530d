// Package websocket
package websocket

import (
	"context"

	"procmond/internal/logger"
	"procmond/internal/store"
)

// Hub fans rendered passes out to every connected stream client. Clients
// joining mid-run first receive the most recent pass from the store.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	store *store.SnapshotStore
	log   logger.Logger
}

func NewHub(store *store.SnapshotStore, log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		store:      store,
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "total_clients", len(h.clients))

			if _, raw, ok := h.store.Latest(); ok {
				client.trySend(raw)
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("ws: client unregistered", "total_clients", len(h.clients))
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				client.trySend(msg)
			}

		case <-ctx.Done():
			return
		}
	}
}

// Emit queues one rendered pass for delivery. The sampler must never block
// on a slow consumer, so a full queue drops the pass instead.
func (h *Hub) Emit(raw []byte) {
	select {
	case h.broadcast <- raw:
	default:
		h.log.Warn("ws: broadcast queue full, dropping pass")
	}
}
