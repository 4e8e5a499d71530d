package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"

	"procmond/internal/logger"
)

// Handler upgrades HTTP requests on the stream endpoint and attaches the
// resulting connection to the hub.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewHandler(hub *Hub, log logger.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			// The stream carries no credentials and the listener is
			// local by default; any origin may read it.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws: upgrade failed", "error", err)
		return
	}

	client := newClient(h.hub, conn, h.log)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
