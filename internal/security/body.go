package security

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/noah-isme/backend-cetak/internal/common"
)

// JSONBody guards request payloads on POST, PUT and PATCH: the content type
// must be JSON and the body at most MaxBytes. Accepted bodies are buffered so
// the idempotency layer and the handler can both read them.
type JSONBody struct {
	MaxBytes int64
}

// Middleware implements chi middleware.
func (j JSONBody) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			next.ServeHTTP(w, r)
			return
		}
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				common.JSONError(w, http.StatusUnsupportedMediaType, common.CodeInvalidArgument, "request body must be application/json", nil)
				return
			}
		}
		if j.MaxBytes <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > j.MaxBytes {
			tooLarge(w, j.MaxBytes)
			return
		}

		buf, err := io.ReadAll(http.MaxBytesReader(w, r.Body, j.MaxBytes))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				tooLarge(w, j.MaxBytes)
				return
			}
			common.JSONError(w, http.StatusBadRequest, common.CodeInvalidArgument, "invalid request body", nil)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(buf))
		r.ContentLength = int64(len(buf))
		next.ServeHTTP(w, r)
	})
}

func tooLarge(w http.ResponseWriter, max int64) {
	common.JSONError(w, http.StatusRequestEntityTooLarge, common.CodeInvalidArgument, "request entity too large", map[string]any{"maxBytes": max})
}
