package handler

import (
	"notes-app/internal/pkg/logger"
	internalWS "notes-app/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// NoteEventsHandler streams note events to websocket viewers.
type NoteEventsHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewNoteEventsHandler(hub *internalWS.Hub, log logger.ILogger) *NoteEventsHandler {
	return &NoteEventsHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *NoteEventsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/notes", h.Stream)
}

// Stream upgrades the request and holds it open until the viewer leaves.
func (h *NoteEventsHandler) Stream(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NoteEventsHandler", "starting websocket session", map[string]interface{}{
			"remote_addr": conn.RemoteAddr().String(),
		})
		internalWS.ServeWs(h.hub, conn)
		h.logger.Info("NoteEventsHandler", "websocket session ended", nil)
	})(c)
}
