package handlers

import (
	"net/http"
	"strconv"

	"tavern_bot/internal/http/middleware"
	"tavern_bot/internal/logger"
	"tavern_bot/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	stateCookie = "tavern_oauth_state"
	loginFailed = "/?error=login_failed"
)

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.SecureCookies, true)
}

// Login starts the Discord OAuth flow.
func (h *Handler) Login(c *gin.Context) {
	state := service.NewOAuthState(h.StateSecret, h.now())
	h.setCookie(c, stateCookie, state, 600)
	c.Redirect(http.StatusFound, h.OAuth.AuthCodeURL(state))
}

// Callback finishes the OAuth flow and issues the session cookie.
func (h *Handler) Callback(c *gin.Context) {
	log := logger.WithContext(c.Request.Context())

	state := c.Query("state")
	cookieState, err := c.Cookie(stateCookie)
	h.setCookie(c, stateCookie, "", -1)
	if err != nil || state == "" || state != cookieState || !service.ValidateOAuthState(state, h.StateSecret, h.now()) {
		log.Warn("oauth state mismatch")
		c.Redirect(http.StatusFound, loginFailed)
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, loginFailed)
		return
	}

	profile, err := h.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Error("oauth exchange failed", "error", err)
		c.Redirect(http.StatusFound, loginFailed)
		return
	}

	token, err := h.Tokens.Issue(profile.ID, profile.Username, profile.Avatar)
	if err != nil {
		log.Error("issue session failed", "error", err)
		c.Redirect(http.StatusFound, loginFailed)
		return
	}

	h.setCookie(c, middleware.SessionCookie, token, int(h.Tokens.TTL().Seconds()))
	log.Info("dashboard login", "user_id", profile.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, middleware.SessionCookie, "", -1)
	c.Redirect(http.StatusFound, "/")
}

// AuthMe reports the login state; it never fails for anonymous callers.
func (h *Handler) AuthMe(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":        claims.UserID(),
			"username":  claims.Username,
			"avatar":    claims.Avatar,
			"avatarURL": AvatarURL(claims.UserID(), claims.Avatar),
		},
	})
}

// AvatarURL builds the CDN url, falling back to Discord's default avatars.
func AvatarURL(userID, avatar string) string {
	if avatar != "" {
		return "https://cdn.discordapp.com/avatars/" + userID + "/" + avatar + ".png"
	}
	id, _ := strconv.ParseUint(userID, 10, 64)
	return "https://cdn.discordapp.com/embed/avatars/" + strconv.FormatUint((id>>22)%6, 10) + ".png"
}
