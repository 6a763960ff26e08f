package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs runs one viewer session; it returns when the peer disconnects.
func ServeWs(hub *Hub, c *websocket.Conn) {
	client := NewClient(hub, c)
	hub.Register(client)

	go client.writePump()
	client.readPump()
}
