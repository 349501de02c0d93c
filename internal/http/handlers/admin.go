package handlers

import (
	"net/http"

	"tavern_bot/internal/http/middleware"
	"tavern_bot/internal/http/response"
	"tavern_bot/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GrantBuff(c *gin.Context) {
	var req service.GrantBuffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, http.StatusBadRequest, response.CodeBadRequest, "userId, multiplier and days are required")
		return
	}

	buff, err := h.Admin.GrantBuff(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "buff": buff})
}

type addBalanceRequest struct {
	UserID string `json:"userId" binding:"required"`
	Amount int64  `json:"amount"`
}

func (h *Handler) AddBalance(c *gin.Context) {
	var req addBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, http.StatusBadRequest, response.CodeBadRequest, "userId and amount are required")
		return
	}

	balance, err := h.Admin.AddBalance(c.Request.Context(), middleware.UserID(c), req.UserID, req.Amount)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "newBalance": balance})
}
