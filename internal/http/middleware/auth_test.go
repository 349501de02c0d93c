package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tavern_bot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue("42", "barkeep", "")
	require.NoError(t, err)

	r := gin.New()
	r.Use(Session(tokens))
	r.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	r.GET("/closed", RequireSession(), func(c *gin.Context) {
		c.String(http.StatusOK, Claims(c).Username)
	})

	tests := []struct {
		name       string
		path       string
		cookie     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "anonymous open route", path: "/open", wantStatus: http.StatusOK, wantBody: ""},
		{name: "anonymous closed route", path: "/closed", wantStatus: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
		{name: "cookie session", path: "/closed", cookie: token, wantStatus: http.StatusOK, wantBody: "barkeep"},
		{name: "bearer session", path: "/open", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "42"},
		{name: "tampered token", path: "/closed", cookie: token + "x", wantStatus: http.StatusUnauthorized, wantBody: "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRequestLoggerSetsID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := doGet(r, "/x", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = doGet(r, "/x", map[string]string{RequestIDHeader: "abc"})
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}
