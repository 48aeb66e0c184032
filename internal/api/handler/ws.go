package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"momentmap/backend/internal/bubblehub"
	"momentmap/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The map client is served from arbitrary origins during testing.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket handles GET /ws: upgrade, register with the hub,
// start the pumps. The connection itself is unauthenticated; a valid
// session token in the `token` query parameter pre-binds the user
// identity, otherwise the client identifies later with a userJoin
// command.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}

	client := &bubblehub.WebSocketClient{
		ConnID: uuid.NewString(),
		Hub:    h.Hub,
		Conn:   conn,
		Send:   make(chan models.Event, 256),
	}

	if token := c.Query("token"); token != "" {
		if userID, err := ParseToken(token); err == nil {
			if user, ok := h.Users.FindByID(userID); ok {
				client.SetUser(user.ID, user.Nickname)
			}
		}
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
