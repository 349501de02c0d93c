package handlers

import (
	"net/http"
	"strconv"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Ranking serves /ranking/chat and /ranking/voice. Bad limits fall back to the default.
func (h *Handler) Ranking(kind domain.RankingKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))

		ranking, err := h.Activity.Ranking(c.Request.Context(), kind, limit)
		if err != nil {
			response.FromError(c, err)
			return
		}

		out := make([]gin.H, 0, len(ranking))
		for _, e := range ranking {
			var discord gin.H
			if e.Profile != nil {
				discord = gin.H{
					"username":    e.Profile.Username,
					"displayName": e.Profile.DisplayName,
					"avatar":      AvatarURL(e.UserID, e.Profile.Avatar),
				}
			}
			out = append(out, gin.H{
				"rank":    e.Rank,
				"user_id": e.UserID,
				"value":   e.Value,
				"discord": discord,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}
