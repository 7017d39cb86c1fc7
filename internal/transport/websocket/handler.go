package websocket

import (
	"net/http"
	"slices"

	"vitals/internal/config"
	"vitals/internal/logger"

	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewHandler(hub *Hub, cfg *config.Config, log logger.Logger) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(cfg.AllowedOrigins) == 0 {
				return true
			}

			allowed := slices.Contains(cfg.AllowedOrigins, origin)
			if !allowed {
				log.Warn("ws origin rejected", "origin", origin)
			}

			return allowed
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		log:      log,
	}
}

// Serve upgrades the request and attaches the client to the live feed.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)

	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.log.Info("ws client connected", "remote_addr", conn.RemoteAddr())
}
