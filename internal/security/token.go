package security

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/noah-isme/backend-cetak/internal/common"
)

// SharedToken guards machine-to-machine endpoints with a pre-shared token,
// sent either in the configured header or as a bearer token.
type SharedToken struct {
	Header string
	Token  string
}

// Middleware rejects requests whose token does not match. An empty configured
// token rejects everything.
func (s SharedToken) Middleware(next http.Handler) http.Handler {
	header := strings.TrimSpace(s.Header)
	if header == "" {
		header = "X-Sync-Token"
	}
	expected := strings.TrimSpace(s.Token)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := strings.TrimSpace(r.Header.Get(header))
		if got == "" {
			auth := strings.TrimSpace(r.Header.Get("Authorization"))
			if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
				got = strings.TrimSpace(auth[7:])
			}
		}
		if expected == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			common.JSONError(w, http.StatusUnauthorized, common.CodeUnauthorized, "invalid sync token", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
