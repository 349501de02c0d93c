package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// SessionResolver returns the viewer's user id, or "" for anonymous viewers.
type SessionResolver func(c *gin.Context) string

func encodeReady(userID string) ([]byte, error) {
	return json.Marshal(Message{Type: "ready", Data: gin.H{"user_id": userID}})
}

// HandleWS upgrades to the live economy feed. An empty allowedOrigin accepts any origin.
func HandleWS(hub *Hub, allowedOrigin string, resolve SessionResolver) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		var userID string
		if resolve != nil {
			userID = resolve(c)
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			hub.log.Warn("ws upgrade error", "error", err)
			return
		}

		client := NewClient(userID, conn, hub)
		go client.Run()
	}
}
