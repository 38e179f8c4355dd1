package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	limiter "github.com/ulule/limiter/v3"

	"github.com/noah-isme/backend-cetak/internal/common"
)

// Config describes how requests are keyed. A nil Key limits by client IP.
type Config struct {
	Key    func(*http.Request) string
	Prefix string
}

// Handler enforces a fixed-window limit before delegating to the next handler.
type Handler struct {
	Limiter *limiter.Limiter
	Config  Config
	OnError func(error)
}

// New builds a Handler allowing max requests per window from store.
func New(store limiter.Store, max int64, window time.Duration, cfg Config) Handler {
	return Handler{
		Limiter: limiter.New(store, limiter.Rate{Period: window, Limit: max}),
		Config:  cfg,
	}
}

// ClientIPKey keys requests by the caller's address.
func ClientIPKey(r *http.Request) string {
	return common.ClientIP(r)
}

// Middleware implements the http.Handler middleware interface. Store errors
// let the request through.
func (h Handler) Middleware(next http.Handler) http.Handler {
	keyFn := h.Config.Key
	if keyFn == nil {
		keyFn = ClientIPKey
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		lctx, err := h.Limiter.Get(r.Context(), h.Config.Prefix+keyFn(r))
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		headers.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			retryAfter := time.Until(time.Unix(lctx.Reset, 0)).Seconds()
			if retryAfter < 0 {
				retryAfter = 0
			}
			headers.Set("Retry-After", strconv.Itoa(int(retryAfter)))
			common.JSONError(w, http.StatusTooManyRequests, common.CodeRateLimited, "rate limit exceeded", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
