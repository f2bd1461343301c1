package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"energen/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter ──────────────────────────────────────────────────────

type ipEntry struct {
	count     int
	windowEnd time.Time
}

// RateLimiter counts requests per client IP in fixed windows.
type RateLimiter struct {
	limit   int
	window  time.Duration
	message string
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*ipEntry
}

func NewRateLimiter(limit int, window time.Duration, message string) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		message: message,
		now:     time.Now,
		entries: make(map[string]*ipEntry),
	}
}

// NewLoginRateLimiter allows 20 login attempts per minute per IP.
func NewLoginRateLimiter() *RateLimiter {
	return NewRateLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.")
}

// Allow records one request from ip and reports whether it is within the
// limit, plus the end of the current window.
func (l *RateLimiter) Allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &ipEntry{windowEnd: now.Add(l.window)}
		l.entries[ip] = entry
	}
	entry.count++
	return entry.count <= l.limit, entry.windowEnd
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.Allow(c.ClientIP())
		if !ok {
			secs := int(windowEnd.Sub(l.now()).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// ── Purge ─────────────────────────────────────────────────────────────────────

// Purge drops expired windows and returns how many were removed.
func (l *RateLimiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	purged := 0
	for ip, entry := range l.entries {
		if now.After(entry.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
	}
	return purged
}

// RunPurge calls Purge every interval until ctx is cancelled.
func (l *RateLimiter) RunPurge(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Purge(); n > 0 {
				log.Debug().Int("purged", n).Msg("rate limiter entries purged")
			}
		}
	}
}
