package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type memoryClient struct {
	lim  *rate.Limiter
	seen time.Time
}

// MemoryRateLimiter is a per-process token bucket per client. It is the
// fallback when no Redis is configured, so limits are not shared across
// instances.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*memoryClient

	limit  int
	window time.Duration
	every  rate.Limit
	idle   time.Duration

	stop chan struct{}
	once sync.Once
}

// NewMemoryRateLimiter allows limit requests per window with a burst of limit.
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}

	rl := &MemoryRateLimiter{
		clients: make(map[string]*memoryClient),
		limit:   limit,
		window:  window,
		every:   rate.Every(window / time.Duration(limit)),
		idle:    3 * window,
		stop:    make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

func (rl *MemoryRateLimiter) Middleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := rl.get(clientKey(c), time.Now())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))

		if !lim.Allow() {
			retry := int(math.Ceil((rl.window / time.Duration(rl.limit)).Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retry))
			log.Debug("rate limited", zap.String("client", clientKey(c)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httperr.HTTPError{
				Code:    "rate_limited",
				Message: "Too many requests. Try again later.",
			})
			return
		}

		remaining := int(lim.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}

// Close stops the idle-client cleanup.
func (rl *MemoryRateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *MemoryRateLimiter) get(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if c, ok := rl.clients[key]; ok {
		c.seen = now
		return c.lim
	}
	l := rate.NewLimiter(rl.every, rl.limit)
	rl.clients[key] = &memoryClient{lim: l, seen: now}
	return l
}

func (rl *MemoryRateLimiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *MemoryRateLimiter) evictIdle(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	for key, c := range rl.clients {
		if now.Sub(c.seen) > rl.idle {
			delete(rl.clients, key)
			evicted++
		}
	}
	return evicted
}
