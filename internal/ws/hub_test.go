package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tavern_bot/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var m Message
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestLiveFeedBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", HandleWS(hub, "", func(c *gin.Context) string { return c.Query("as") }))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?as=u1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	ready := readMessage(t, conn)
	assert.Equal(t, "ready", ready.Type)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(domain.Event{Type: domain.EventJackpot, UserID: "u2", Amount: 400})
	msg := readMessage(t, conn)
	assert.Equal(t, "event", msg.Type)
	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "jackpot", data["type"])
	assert.Equal(t, float64(400), data["amount"])
}

func TestHubStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	// no Run loop: the buffer fills and further events are dropped
	for i := 0; i < cap(hub.broadcast)+10; i++ {
		hub.Publish(domain.Event{Type: domain.EventGamble})
	}
	assert.Equal(t, cap(hub.broadcast), len(hub.broadcast))
}

func TestRegisterAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	c := &Client{Send: make(chan []byte, 1), Hub: hub}
	assert.False(t, hub.add(c))
	hub.remove(c)
	assert.Zero(t, hub.ClientCount())
}
