package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"momentmap/backend/internal/models"
	"momentmap/backend/internal/storage"
)

// PostBubble handles POST /api/bubbles: store the bubble, then fan it
// out to every realtime connection.
func (h *Handler) PostBubble(c *gin.Context) {
	var payload models.BubblePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	bubble := h.Bubbles.Insert(payload)

	h.Hub.PublishGlobal(models.Event{
		Type:    models.EventNewBubble,
		Payload: bubble,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "bubble": bubble})
}

// ListBubbles handles GET /api/bubbles. Each filter dimension applies
// only when its parameters parse; a missing or malformed value means
// that dimension is simply not filtered.
func (h *Handler) ListBubbles(c *gin.Context) {
	f := storage.BubbleFilter{
		Now:         time.Now().UnixMilli(),
		Lat:         parseFloatParam(c.Query("lat")),
		Lng:         parseFloatParam(c.Query("lng")),
		Range:       parseFloatParam(c.Query("range")),
		LocationKey: c.Query("locationKey"),
	}

	bubbles := h.Bubbles.Query(f)

	c.JSON(http.StatusOK, gin.H{"success": true, "bubbles": bubbles})
}

// DeleteBubble handles DELETE /api/bubbles/:id. Deleting a missing id
// is reported through the success flag, not an HTTP error.
func (h *Handler) DeleteBubble(c *gin.Context) {
	id := c.Param("id")
	if h.Bubbles.Delete(id) {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": false, "message": "bubble not found"})
}

func parseFloatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
