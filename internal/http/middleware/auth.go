package middleware

import (
	"net/http"
	"strings"

	"tavern_bot/internal/http/response"
	"tavern_bot/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "tavern_session"

	ctxUserID  = "user_id"
	ctxSession = "session"
)

// sessionToken reads the session cookie, falling back to a bearer header.
func sessionToken(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// Resolve parses the caller's session without rejecting anonymous requests.
func Resolve(tokens *service.TokenService, c *gin.Context) *service.SessionClaims {
	raw := sessionToken(c)
	if raw == "" {
		return nil
	}
	claims, err := tokens.Parse(raw)
	if err != nil {
		return nil
	}
	return claims
}

// Session stores the caller's claims when a valid session is present.
func Session(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := Resolve(tokens, c); claims != nil {
			c.Set(ctxUserID, claims.UserID())
			c.Set(ctxSession, claims)
		}
		c.Next()
	}
}

// RequireSession rejects requests without a session. Session must run first.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Log in first.")
			return
		}
		c.Next()
	}
}

// UserID is the logged-in Discord user id, or "".
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func Claims(c *gin.Context) *service.SessionClaims {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.SessionClaims)
	return claims
}
