package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/cuisine-de-lin/order-board-api/services"
)

// StreamEvents handles GET /events - a Server-Sent Events stream of order
// lifecycle events. New connections receive an orders:init snapshot first;
// subsequent events arrive in server commit order. Clients that disconnect
// resynchronize from the snapshot on reconnect.
func StreamEvents(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch := hub.Subscribe()
		defer hub.Unsubscribe(ch)

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case ev, ok := <-ch:
				if !ok {
					return false
				}
				c.Render(-1, ev)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
