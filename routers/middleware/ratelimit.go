package middleware

import (
	"net/http"
	"sync"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/slpe/agentpay/config"
	u "github.com/slpe/agentpay/utils"
)

var (
	limiter  gin.HandlerFunc
	initOnce sync.Once
)

// RateLimitMiddleware applies a per-IP request rate limit
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		initOnce.Do(func() {
			conf := config.ServerConfig()

			store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
				Rate:  time.Second,
				Limit: uint(conf.RateLimitPerSecond),
			})
			limiter = ratelimit.RateLimiter(store, &ratelimit.Options{
				ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
					u.APIResponse(
						c,
						http.StatusTooManyRequests,
						"error",
						"Too many requests from this IP address",
						map[string]interface{}{
							"retry_after": time.Until(info.ResetTime).Seconds(),
							"limit":       info.Limit,
						},
					)
					c.Abort()
				},
				KeyFunc: func(c *gin.Context) string {
					return "ip:" + c.ClientIP()
				},
			})
		})

		limiter(c)
	}
}
