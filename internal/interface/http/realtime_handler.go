package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swagatom/blog-api/internal/realtime"
)

type RealtimeHandler struct {
	Broadcast *realtime.Broadcaster
	Logger    *logrus.Logger
}

func NewRealtimeHandler(b *realtime.Broadcaster, logger *logrus.Logger) *RealtimeHandler {
	return &RealtimeHandler{Broadcast: b, Logger: logger}
}

// Comments GET /api/realtime/comments
// Server-sent event stream of commentLiked events. One persistent connection
// per browser tab; the subscription dies with the connection. Delivery is
// at-most-once, so clients treat events as hints and reconcile through the
// REST read path.
func (h *RealtimeHandler) Comments(c *gin.Context) {
	events, cancel := h.Broadcast.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("commentLiked", ev)
			return true
		}
	})
}
