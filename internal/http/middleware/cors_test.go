package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		allowed    string
		origin     string
		method     string
		wantStatus int
		wantOrigin string
	}{
		{"allowed origin", "https://tavern.example", "https://tavern.example", http.MethodGet, http.StatusOK, "https://tavern.example"},
		{"foreign origin", "https://tavern.example", "https://evil.example", http.MethodGet, http.StatusOK, ""},
		{"any origin in dev", "", "http://localhost:5173", http.MethodGet, http.StatusOK, "http://localhost:5173"},
		{"preflight", "https://tavern.example", "https://tavern.example", http.MethodOptions, http.StatusNoContent, "https://tavern.example"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tc.allowed))
			r.GET("/api/shop", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tc.method, "/api/shop", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
