package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSharedToken(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	guarded := SharedToken{Token: "s3cret"}.Middleware(ok)

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"sync header", "X-Sync-Token", "s3cret", http.StatusNoContent},
		{"bearer", "Authorization", "Bearer s3cret", http.StatusNoContent},
		{"wrong token", "X-Sync-Token", "guess", http.StatusUnauthorized},
		{"missing", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/events", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rr := httptest.NewRecorder()
			guarded.ServeHTTP(rr, req)
			require.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestSharedTokenUnconfiguredRejects(t *testing.T) {
	h := SharedToken{}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rules", nil)
	req.Header.Set("X-Sync-Token", "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
