// Package websocket
package websocket

import (
	"context"
	"encoding/json"

	"vitals/internal/domain"
	"vitals/internal/logger"
)

// Hub broadcasts each published sample to every connected client. Clients
// that cannot keep up are unregistered rather than allowed to back up the
// collection loop.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	log logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run pumps samples to clients until ctx is cancelled. samples is
// typically a subscription on the collector's publication hub.
func (h *Hub) Run(ctx context.Context, samples <-chan domain.Sample) {
	for {
		select {
		case <-ctx.Done():
			h.log.Info("ws: hub shutting down")
			for client := range h.clients {
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "total_clients", len(h.clients))

		case client := <-h.unregister:
			if !h.clients[client] {
				continue
			}
			delete(h.clients, client)
			close(client.send)
			h.log.Info("ws: client unregistered", "total_clients", len(h.clients))

		case sample, ok := <-samples:
			if !ok {
				return
			}
			h.broadcast(sample)
		}
	}
}

func (h *Hub) broadcast(sample domain.Sample) {
	message, err := json.Marshal(sample)
	if err != nil {
		h.log.Error("ws: failed to marshal sample", "error", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client send buffer full, dropping client")
			delete(h.clients, client)
			close(client.send)
		}
	}
}
