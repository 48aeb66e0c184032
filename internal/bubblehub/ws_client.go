package bubblehub

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"momentmap/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// WebSocketClient implements the Client interface over a
// gorilla/websocket connection.
type WebSocketClient struct {
	ConnID   string
	UserID   string
	Nickname string

	Conn *websocket.Conn
	Hub  *ManagerService
	Send chan models.Event
}

func (c *WebSocketClient) GetConnID() string   { return c.ConnID }
func (c *WebSocketClient) GetNickname() string { return c.Nickname }

func (c *WebSocketClient) SetUser(userID, nickname string) {
	c.UserID = userID
	c.Nickname = nickname
}

func (c *WebSocketClient) GetSendChannel() chan<- models.Event { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the write pump. The read
// pump stops on its own once the connection is closed.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump decodes inbound command frames and forwards them to the
// hub. On any read error it unregisters the connection, which is how a
// disconnect promptly clears the presence and room indices.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from connection %s: %v", c.ConnID, err)
			}
			break
		}

		var cmd models.Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			log.Printf("error decoding command from connection %s: %v", c.ConnID, err)
			continue
		}

		// Never trust a conn id from the wire.
		cmd.ConnID = c.ConnID
		c.Hub.IncomingCh <- cmd
	}
}

// writePump writes queued events to the socket and keeps the
// connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("error encoding event for connection %s: %v", c.ConnID, err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			// Drain whatever else is already queued.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				data, err := json.Marshal(next)
				if err != nil {
					continue
				}
				if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
