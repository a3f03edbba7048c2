package http

import (
	"net"
	"net/http"

	"home-budget/metrics"
)

// RateLimitMiddleware throttles by client IP.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				metrics.RateLimited.Inc()
				respondError(w, r, http.StatusTooManyRequests, ErrMsgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
