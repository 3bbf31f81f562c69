// Package middleware holds HTTP middleware that is not router-specific.
package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a fixed-window, per-client in-memory rate limiter. It sits
// behind chi's RealIP middleware, so RemoteAddr already carries the real
// client address.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	span    time.Duration
}

type window struct {
	start time.Time
	count int
}

func NewRateLimiter(limit int, span time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		span:    span,
	}
	go rl.evictLoop()
	return rl
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.span)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, w := range rl.clients {
			if now.Sub(w.start) > rl.span {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Limit rejects requests beyond the configured rate with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		rl.mu.Lock()
		win, ok := rl.clients[key]
		if !ok || time.Since(win.start) > rl.span {
			win = &window{start: time.Now()}
			rl.clients[key] = win
		}
		win.count++
		count := win.count
		rl.mu.Unlock()

		if count > rl.limit {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
