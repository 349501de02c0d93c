package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tavern_bot/internal/cache"
	"tavern_bot/internal/domain"
	httpserver "tavern_bot/internal/http"
	"tavern_bot/internal/http/handlers"
	"tavern_bot/internal/http/middleware"
	"tavern_bot/internal/service"
	"tavern_bot/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noOAuth struct{}

func (noOAuth) AuthCodeURL(string) string { return "" }
func (noOAuth) Exchange(context.Context, string) (*domain.DiscordProfile, error) {
	return nil, assert.AnError
}

// TestE2E_LiveFeedAndStats runs the dashboard against Postgres: a check-in made
// through the economy shows up on the live feed and in /api/me/stats.
func TestE2E_LiveFeedAndStats(t *testing.T) {
	store := openStore(t)
	user := newUserID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub()
	go hub.Run(ctx)

	kv := cache.NewMemoryCache(time.Minute)
	defer kv.Close()

	econ := service.NewEconomyService(store, service.EconomyOptions{DailyReward: 5000, Events: hub})
	memes := service.NewMemeService(store.Memes())
	activity := service.NewActivityService(store, kv, nil)
	admin := service.NewAdminService(store, econ, nil)
	tokens := service.NewTokenService("test-secret", time.Hour)
	h := handlers.NewHandler(econ, memes, activity, admin, tokens, noOAuth{}, nil, handlers.HandlerConfig{StateSecret: "state"})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	httpserver.RegisterRoutes(r, httpserver.Options{
		Handler: h,
		Health:  handlers.NewHealthHandler(store, nil, "test"),
		Hub:     hub,
		Limiter: middleware.NewRateLimiter(nil, "it"),
		Limits:  httpserver.Limits{APIRequests: 100, APIWindow: time.Minute, AuthRequests: 100, AuthWindow: time.Minute},
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	token, err := tokens.Issue(user, "patron", "")
	require.NoError(t, err)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	// single reader goroutine to avoid concurrent ReadMessage calls
	frames := make(chan ws.Message, 16)
	go func() {
		defer close(frames)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var m ws.Message
			if json.Unmarshal(raw, &m) == nil {
				frames <- m
			}
		}
	}()

	next := func() ws.Message {
		select {
		case m, ok := <-frames:
			require.True(t, ok, "feed closed")
			return m
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for feed message")
		}
		return ws.Message{}
	}

	ready := next()
	require.Equal(t, "ready", ready.Type)
	assert.Equal(t, user, ready.Data.(map[string]any)["user_id"])

	_, err = econ.DailyCheckin(ctx, user)
	require.NoError(t, err)

	ev := next()
	require.Equal(t, "event", ev.Type)
	data := ev.Data.(map[string]any)
	assert.Equal(t, string(domain.EventCheckin), data["type"])
	assert.Equal(t, user, data["user_id"])

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/me/stats", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Balance        int64 `json:"balance"`
		CheckedInToday bool  `json:"checkedInToday"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(6000), body.Balance)
	assert.True(t, body.CheckedInToday)
}
