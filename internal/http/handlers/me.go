package handlers

import (
	"net/http"
	"strconv"

	"tavern_bot/internal/http/middleware"
	"tavern_bot/internal/http/response"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 20

// MyStats returns the caller's balance, counters, inventory and buffs.
func (h *Handler) MyStats(c *gin.Context) {
	userID := middleware.UserID(c)
	profile, err := h.Economy.Profile(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	u := profile.User
	var discord gin.H
	if claims := middleware.Claims(c); claims != nil {
		discord = gin.H{
			"username": claims.Username,
			"avatar":   AvatarURL(userID, claims.Avatar),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":        u.ID,
		"balance":        u.Balance,
		"chat_count":     u.ChatCount,
		"voice_time":     u.VoiceSeconds,
		"daily_check":    u.LastDailyCheckin,
		"checkedInToday": profile.CheckedInToday,
		"buffs":          profile.Buffs,
		"discord":        discord,
	})
}

func (h *Handler) MyInventory(c *gin.Context) {
	profile, err := h.Economy.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile.Inventory)
}

func (h *Handler) MyMemes(c *gin.Context) {
	memes, err := h.Memes.ListByCreator(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, memes)
}

// MyHistory returns the newest journal entries; ?limit caps at 100, ?type filters.
func (h *Handler) MyHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			response.Abort(c, http.StatusBadRequest, response.CodeBadRequest, "limit must be a positive number")
			return
		}
		limit = min(n, 100)
	}

	txs, err := h.Economy.History(c.Request.Context(), middleware.UserID(c), c.Query("type"), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}
