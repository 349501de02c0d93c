package handlers

import (
	"net/http"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Shop lists items for sale, optionally filtered by ?category.
func (h *Handler) Shop(c *gin.Context) {
	items, err := h.Economy.Shop(c.Request.Context(), domain.ItemCategory(c.Query("category")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Overview(c *gin.Context) {
	ov, err := h.Activity.Overview(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (h *Handler) BotStatus(c *gin.Context) {
	if h.Bot == nil {
		c.JSON(http.StatusOK, domain.BotStatus{Status: "offline"})
		return
	}
	c.JSON(http.StatusOK, h.Bot.Status())
}
