package middleware

import (
	"net/http"
	"sync"

	"github.com/agriswayam/go-notification-service/internal/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// FarmerRateLimiter manages rate limiters per farmer so one noisy dashboard
// session cannot flood the trigger endpoints.
type FarmerRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// NewFarmerRateLimiter creates a new per-farmer rate limiter
func NewFarmerRateLimiter(rps float64, burst int) *FarmerRateLimiter {
	return &FarmerRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// GetLimiter returns the rate limiter for a specific farmer
func (rl *FarmerRateLimiter) GetLimiter(farmerID string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[farmerID]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		// Double-check after acquiring write lock
		limiter, exists = rl.limiters[farmerID]
		if !exists {
			limiter = rate.NewLimiter(rl.rate, rl.burst)
			rl.limiters[farmerID] = limiter
		}
		rl.mu.Unlock()
	}

	return limiter
}

// RateLimitMiddleware limits requests per farmer, identified by the
// X-Farmer-ID header (falling back to the client IP for anonymous sessions).
func RateLimitMiddleware(rl *FarmerRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		farmerID := c.GetHeader("X-Farmer-ID")
		if farmerID == "" {
			farmerID = c.ClientIP()
		}

		limiter := rl.GetLimiter(farmerID)

		if !limiter.Allow() {
			metrics.RateLimitExceeded.WithLabelValues(farmerID).Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
