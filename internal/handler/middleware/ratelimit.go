package middleware

import (
	"net/http"
	"strconv"
	"time"

	"garage-scheduler/internal/handler/httperr"
	"garage-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Admitter decides whether the client identified by key may proceed.
type Admitter interface {
	Allow(key string) (ok bool, retryAfter time.Duration)
}

// RateLimit rejects requests over the client's budget with 429 and a
// Retry-After header. Clients are keyed by IP.
func RateLimit(admitter Admitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, retryAfter := admitter.Allow(ip)
		if ok {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.FormatInt(int64(retryAfter/time.Second), 10))
		httperr.AbortWithError(c, http.StatusTooManyRequests,
			errs.Newf("rate limit exceeded for %s", ip),
			"Too many requests", nil)
	}
}
