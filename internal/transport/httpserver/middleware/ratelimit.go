package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"church-app-go/pkg/logger"
)

// Counter is a fixed-window counter store. pkg/cache.Redis and the
// in-memory cache both implement it.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type RateLimit struct {
	Name    string
	Limit   int
	Window  time.Duration
	Message string
}

// NewRateLimiter counts requests per client IP. Counter failures let the
// request through.
func NewRateLimiter(counter Counter, rule RateLimit, log logger.Logger) func(http.Handler) http.Handler {
	if rule.Message == "" {
		rule.Message = "Too many requests from this IP, please try again later."
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rule.Limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := "rl:" + rule.Name + ":" + clientIP(r)
			count, left, err := counter.Incr(r.Context(), key, rule.Window)
			if err != nil {
				log.InternalError("ratelimit: counter failed", err, "rule", rule.Name)
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(rule.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("RateLimit-Limit", strconv.Itoa(rule.Limit))
			w.Header().Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("RateLimit-Reset", strconv.Itoa(seconds(left)))

			if count > int64(rule.Limit) {
				log.Warn("ratelimit: limit exceeded", "rule", rule.Name, "ip", clientIP(r), "count", count)
				w.Header().Set("Retry-After", strconv.Itoa(seconds(left)))
				writeError(w, http.StatusTooManyRequests, "rate_limited", rule.Message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
