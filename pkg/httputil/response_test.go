package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/obafemitayor/user-snack/pkg/errors"
	"github.com/obafemitayor/user-snack/pkg/logger"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"id": "o1"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"id":"o1"`)
}

func TestWriteErrorAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/x", nil)
	log := logger.NewWithWriter("test", "error", io.Discard)

	WriteError(rec, req, apperrors.NotFound("order", "x"), log)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	errResp := decodeError(t, rec)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func TestWriteErrorNetworkSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	log := logger.NewWithWriter("test", "error", io.Discard)

	WriteError(rec, req, apperrors.Network(errors.New("refused")), log)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	errResp := decodeError(t, rec)
	assert.Equal(t, "NETWORK_ERROR", errResp.Code)
}

func TestWriteErrorUnknownErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	log := logger.NewWithWriter("test", "error", io.Discard)

	WriteError(rec, req, errors.New("boom"), log)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errResp := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", errResp.Code)
}
