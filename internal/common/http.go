package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the caller address. chi's RealIP middleware has already
// folded X-Forwarded-For/X-Real-IP into RemoteAddr when it is mounted; the
// headers are still consulted for handlers served without it.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if candidate := strings.TrimSpace(first); candidate != "" {
			return candidate
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

// DecodeJSON strictly decodes a single JSON document from the request body.
// Failures are returned as INVALID_ARGUMENT AppErrors.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return InvalidArgument("request body is required", nil)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return InvalidArgument("request body is required", err)
		case errors.As(err, &syntaxErr):
			return InvalidArgument("malformed JSON body", err)
		case errors.As(err, &typeErr):
			appErr := InvalidArgument(fmt.Sprintf("field %s has the wrong type", typeErr.Field), err)
			appErr.Details = map[string]any{"field": typeErr.Field}
			return appErr
		default:
			return InvalidArgument("invalid request body", err)
		}
	}
	if dec.More() {
		return InvalidArgument("request body must contain a single JSON object", nil)
	}
	return nil
}
