package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"portfolio-tracker/internal/config"
)

// RateLimitMiddleware keeps a token bucket per client IP.
type RateLimitMiddleware struct {
	cfg      config.RateLimitConfig
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimitMiddleware creates the rate limit middleware.
func NewRateLimitMiddleware(cfg config.RateLimitConfig) *RateLimitMiddleware {
	if cfg.RequestsPerMinute < 1 {
		cfg.RequestsPerMinute = 120
	}
	if cfg.Burst < 1 {
		cfg.Burst = cfg.RequestsPerMinute
	}
	return &RateLimitMiddleware{
		cfg:      cfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (m *RateLimitMiddleware) limiterFor(clientIP string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, ok := m.limiters[clientIP]
	if !ok {
		limiter = rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(m.cfg.RequestsPerMinute)),
			m.cfg.Burst,
		)
		m.limiters[clientIP] = limiter
	}
	return limiter
}

// Limit rejects requests over the per-client budget with 429.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.cfg.Enabled {
			c.Next()
			return
		}

		if !m.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
