package middleware

import (
	"sync"
	"time"
)

type clientInfo struct {
	start time.Time
	count int64
}

// localWindow is the in-process fixed window used when Redis is not configured.
type localWindow struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	now     func() time.Time
}

func newLocalWindow() *localWindow {
	return &localWindow{clients: make(map[string]*clientInfo), now: time.Now}
}

// incr returns the request count for key inside the current window.
func (w *localWindow) incr(key string, window time.Duration) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	ci, ok := w.clients[key]
	if !ok || now.Sub(ci.start) > window {
		w.clients[key] = &clientInfo{start: now, count: 1}
		if len(w.clients) > 10000 {
			w.sweep(now, window)
		}
		return 1
	}
	ci.count++
	return ci.count
}

func (w *localWindow) sweep(now time.Time, window time.Duration) {
	for k, ci := range w.clients {
		if now.Sub(ci.start) > window {
			delete(w.clients, k)
		}
	}
}
