package httpapi

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/syntern/internal/session"
)

// eventBuffer is how many events a slow client may lag behind before
// events are dropped for it.
const eventBuffer = 64

// keepAlive is how often an idle stream sends a comment line.
const keepAlive = 25 * time.Second

// Events streams session events as server-sent events until the client leaves.
// Event names are the event kinds; data is the JSON-encoded event.
func (h *Handler) Events(c *gin.Context) {
	events := make(chan session.Event, eventBuffer)
	unsubscribe := h.manager.Bus().Subscribe(func(e session.Event) {
		select {
		case events <- e:
		default:
			h.logger.Warn("http", "event stream lagging, dropped "+string(e.Kind))
		}
	})
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.SSEvent("ready", gin.H{"ok": true})
	c.Writer.Flush()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e := <-events:
			c.SSEvent(string(e.Kind), e)
			return true
		case <-ticker.C:
			_, _ = io.WriteString(w, ": keep-alive\n\n")
			return true
		}
	})
}
