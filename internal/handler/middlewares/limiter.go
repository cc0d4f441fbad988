package middlewares

import (
	"net/http"

	"go.uber.org/zap"
)

// RateLimiter allows at most maxConcurrent requests at once and answers
// 429 to the rest. A non-positive limit disables it.
func RateLimiter(maxConcurrent int, log *zap.Logger) func(next http.Handler) http.Handler {
	if maxConcurrent <= 0 {
		log.Info("rate limiter disabled")
		return func(next http.Handler) http.Handler { return next }
	}

	semaphore := make(chan struct{}, maxConcurrent)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
				next.ServeHTTP(w, r)
			default:
				log.Warn("too many concurrent requests", zap.String("uri", r.URL.Path))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			}
		})
	}
}
