package middleware

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-mealsearch/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterInfo is a struct that holds a rate limiter and the last time it was seen.
// lastSeen is read by the cleanup goroutine while requests update it.
type limiterInfo struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // UnixNano
}

func newLimiterInfo(rps int, now time.Time) *limiterInfo {
	info := &limiterInfo{limiter: rate.NewLimiter(rate.Limit(rps), rps)}
	info.touch(now)
	return info
}

func (i *limiterInfo) touch(now time.Time) {
	i.lastSeen.Store(now.UnixNano())
}

func (i *limiterInfo) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, i.lastSeen.Load()))
}

// RateLimitByIP applies rate limiting to requests per IP address. Idle
// limiters are evicted every cleanupInterval until ctx is done.
func RateLimitByIP(ctx context.Context, rps int, cleanupInterval time.Duration, expiration time.Duration) gin.HandlerFunc {
	var limiters sync.Map

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiters.Range(func(key, value interface{}) bool {
					if value.(*limiterInfo).idleSince(time.Now()) > expiration {
						limiters.Delete(key)
					}
					return true
				})
			}
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		// Use LoadOrStore to ensure thread safety
		actual, _ := limiters.LoadOrStore(ip, newLimiterInfo(rps, time.Now()))

		info := actual.(*limiterInfo)
		info.touch(time.Now())

		if !info.limiter.Allow() {
			logger.FromContext(c).Debug("rate limited", zap.String("ip", ip))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
