package common_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-cetak/internal/common"
)

type envelope struct {
	Error common.ErrorBody `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	common.WriteError(rr, common.NotFound("rules not found", errors.New("no rows")))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, common.CodeNotFound, decodeEnvelope(t, rr).Error.Code)

	rr = httptest.NewRecorder()
	common.WriteError(rr, errors.New("opaque"))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeEnvelope(t, rr)
	require.Equal(t, common.CodeInternal, body.Error.Code)
	require.Equal(t, "internal error", body.Error.Message)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Quantity int `json:"quantity"`
	}

	var p payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity": 5}`))
	require.NoError(t, common.DecodeJSON(req, &p))
	require.Equal(t, 5, p.Quantity)

	for name, body := range map[string]string{
		"unknown field": `{"qty": 5}`,
		"syntax":        `{"quantity":`,
		"wrong type":    `{"quantity": "five"}`,
		"two documents": `{"quantity": 1}{"quantity": 2}`,
		"empty":         ``,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			err := common.DecodeJSON(req, &payload{})
			var appErr *common.AppError
			require.True(t, errors.As(err, &appErr))
			require.Equal(t, common.CodeInvalidArgument, appErr.Code)
			require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
		})
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:4321"
	require.Equal(t, "10.0.0.5", common.ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, "203.0.113.7", common.ClientIP(req))
}
