package security

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Headers attaches security and caching headers to API responses. Quotes and
// prices depend on the current rules snapshot and are marked no-store; GETs
// under a CacheablePrefixes entry (the paper catalog) may be cached briefly.
type Headers struct {
	Enable                bool
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	CacheablePrefixes     []string
	CacheMaxAge           time.Duration
}

// Middleware implements chi middleware.
func (h Headers) Middleware(next http.Handler) http.Handler {
	if !h.Enable {
		return next
	}
	hsts := h.hstsValue()
	cacheable := "public, max-age=" + strconv.Itoa(int(h.CacheMaxAge/time.Second))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "no-referrer")
		headers.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		if h.cacheable(r) {
			headers.Set("Cache-Control", cacheable)
		} else {
			headers.Set("Cache-Control", "no-store")
		}
		if hsts != "" && r.TLS != nil {
			headers.Set("Strict-Transport-Security", hsts)
		}
		next.ServeHTTP(w, r)
	})
}

func (h Headers) cacheable(r *http.Request) bool {
	if r.Method != http.MethodGet || h.CacheMaxAge <= 0 {
		return false
	}
	for _, prefix := range h.CacheablePrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

func (h Headers) hstsValue() string {
	if !h.EnableHSTS {
		return ""
	}
	maxAge := h.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = 31536000
	}
	value := "max-age=" + strconv.Itoa(maxAge)
	if h.HSTSIncludeSubdomains {
		value += "; includeSubDomains"
	}
	return value
}
