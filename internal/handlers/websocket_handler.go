package handlers

import (
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/AkshayEddula/bibleapp-sub000/internal/handlers/ws"
)

// WebSocketHandler owns the realtime hub. The socket is push-only: incoming
// frames are read and discarded to keep the close handshake working.
type WebSocketHandler struct {
	hub *ws.Hub
}

func NewWebSocketHandler() *WebSocketHandler {
	return &WebSocketHandler{hub: ws.NewHub()}
}

// GetHub returns the hub instance (used as the notifier for services)
func (h *WebSocketHandler) GetHub() *ws.Hub {
	return h.hub
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID := c.Locals("userID").(uint)

	h.hub.Register(userID, c)
	defer h.hub.Unregister(userID)

	log.Printf("User %d connected via WebSocket", userID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("User %d disconnected from WebSocket", userID)
}
