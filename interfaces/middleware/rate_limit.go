package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"tiktok-planner/domain/dto"
	"tiktok-planner/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	MsgTooManyRequests = "Too many requests. Try again later."

	idleLimiterTTL = 10 * time.Minute
	sweepThreshold = 1024
)

// RateLimitConfig defines a token bucket per client key.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	KeyFn             func(ctx *gin.Context) string
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key in memory.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	keyFn    func(ctx *gin.Context) string
	now      func() time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFn == nil {
		cfg.KeyFn = KeyByIP
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(cfg.RequestsPerMinute) / 60),
		burst:    cfg.Burst,
		keyFn:    cfg.KeyFn,
		now:      time.Now,
	}
}

// Allow reports whether one more request for key fits in its bucket.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.visitors) >= sweepThreshold {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > idleLimiterTTL {
				delete(rl.visitors, k)
			}
		}
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Handler aborts with 429 once a client exhausts its bucket.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if rl.Allow(rl.keyFn(ctx)) {
			ctx.Next()
			return
		}
		metrics.IncRateLimited()
		retryAfter := 1
		if rl.limit > 0 {
			retryAfter = int(1/float64(rl.limit)) + 1
		}
		ctx.Header("Retry-After", strconv.Itoa(retryAfter))
		ctx.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: MsgTooManyRequests})
	}
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(ctx *gin.Context) string {
	return "ip:" + ctx.ClientIP()
}
