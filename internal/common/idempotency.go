package common

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const idemPending = "pending"

// Idem provides an Idempotency-Key middleware backed by Redis. The first
// request for a key is executed and its response stored; later requests with
// the same key and body receive the stored response.
type Idem struct {
	R   *redis.Client
	TTL time.Duration
}

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
	Fingerprint string `json:"fingerprint"`
}

func idemKey(r *http.Request, header string) string {
	return "idem:" + digest([]byte(r.Method+" "+r.URL.Path+" "+header))
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

type responseCapture struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *responseCapture) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

// Middleware enforces idempotency semantics for write endpoints.
func (i Idem) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Idempotency-Key")
		if header == "" || i.R == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()

		var payload []byte
		if r.Body != nil {
			var err error
			payload, err = io.ReadAll(r.Body)
			if err != nil {
				JSONError(w, http.StatusBadRequest, CodeInvalidArgument, "invalid request body", nil)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(payload))
		}
		fingerprint := digest(payload)
		key := idemKey(r, header)

		ok, err := i.R.SetNX(ctx, key, idemPending, i.TTL).Result()
		if err != nil {
			idemStoreError(w, err)
			return
		}
		if !ok {
			i.replay(ctx, w, key, fingerprint)
			return
		}

		capture := &responseCapture{ResponseWriter: w}
		completed := false
		defer func() {
			// release the key when the handler failed or panicked so the client may retry
			if !completed {
				_ = i.R.Del(context.Background(), key).Err()
			}
		}()
		next.ServeHTTP(capture, r)

		if capture.status >= http.StatusInternalServerError || capture.status == 0 {
			return
		}
		stored, err := json.Marshal(storedResponse{
			Status:      capture.status,
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.body.Bytes(),
			Fingerprint: fingerprint,
		})
		if err != nil {
			return
		}
		if err := i.R.Set(context.Background(), key, stored, i.TTL).Err(); err == nil {
			completed = true
		}
	})
}

func (i Idem) replay(ctx context.Context, w http.ResponseWriter, key, fingerprint string) {
	raw, err := i.R.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			JSONError(w, http.StatusConflict, CodeIdempotentReplay, "duplicate request", nil)
			return
		}
		idemStoreError(w, err)
		return
	}
	if string(raw) == idemPending {
		JSONError(w, http.StatusConflict, CodeIdempotentReplay, "request with this idempotency key is still in progress", nil)
		return
	}
	var stored storedResponse
	if err := json.Unmarshal(raw, &stored); err != nil {
		idemStoreError(w, err)
		return
	}
	if stored.Fingerprint != fingerprint {
		JSONError(w, http.StatusConflict, CodeIdempotentReplay, "idempotency key was used with a different request body", nil)
		return
	}
	if stored.ContentType != "" {
		w.Header().Set("Content-Type", stored.ContentType)
	}
	w.Header().Set("Idempotent-Replayed", "true")
	w.WriteHeader(stored.Status)
	_, _ = w.Write(stored.Body)
}

func idemStoreError(w http.ResponseWriter, err error) {
	JSONError(w, http.StatusInternalServerError, CodeInternal, "idempotency store error", map[string]any{"error": err.Error()})
}
