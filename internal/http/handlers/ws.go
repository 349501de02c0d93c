package handlers

import (
	"tavern_bot/internal/http/middleware"
	"tavern_bot/internal/ws"

	"github.com/gin-gonic/gin"
)

// WS serves the live economy feed. Logged-in viewers are tagged with their id.
func (h *Handler) WS(hub *ws.Hub, allowedOrigin string) gin.HandlerFunc {
	return ws.HandleWS(hub, allowedOrigin, func(c *gin.Context) string {
		if claims := middleware.Resolve(h.Tokens, c); claims != nil {
			return claims.UserID()
		}
		return ""
	})
}
