package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/http/middleware"
	"tavern_bot/internal/ws"

	"github.com/gorilla/websocket"
)

// ws_smoke connects to the dashboard live feed and prints economy events
// until interrupted or -n events have arrived.
func main() {
	addr := flag.String("addr", "ws://127.0.0.1:3000/ws", "live feed url")
	token := flag.String("token", "", "session token sent as the session cookie")
	n := flag.Int("n", 0, "stop after n events (0 runs until interrupted)")
	flag.Parse()

	header := http.Header{}
	if *token != "" {
		header.Set("Cookie", middleware.SessionCookie+"="+*token)
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	conn, _, err := websocket.DefaultDialer.Dial(*addr, header)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	go func() {
		defer close(done)
		seen := 0
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read: %v", err)
				return
			}
			var msg ws.Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				log.Printf("bad frame: %s", raw)
				continue
			}
			if msg.Type != "event" {
				log.Printf("%s: %s", msg.Type, raw)
				continue
			}
			var ev domain.Event
			data, _ := json.Marshal(msg.Data)
			if err := json.Unmarshal(data, &ev); err != nil {
				log.Printf("bad event: %s", raw)
				continue
			}
			log.Printf("%-9s user=%s amount=%d %s", ev.Type, ev.UserID, ev.Amount, ev.Detail)
			seen++
			if *n > 0 && seen >= *n {
				return
			}
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		<-done
	}
	log.Println("smoke test finished")
}
