package errors_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/ecohub/internal/app/features/errors"
	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) respond.ErrorBody {
	t.Helper()
	var body respond.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespond_ClientErrorsKeepMessage(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperr.NewValidation("Title is required."), http.StatusBadRequest},
		{apperr.NewPreconditionFailed("Campaign is full"), http.StatusBadRequest},
		{apperr.NewNotFound("Campaign not found"), http.StatusNotFound},
		{apperr.NewAuthorization("Not authorized"), http.StatusForbidden},
		{apperr.NewConflict("Campaign status has changed"), http.StatusConflict},
	}
	for _, tt := range tests {
		core, logs := observer.New(zapcore.DebugLevel)
		el := uierrors.NewErrorLogger(zap.New(core))
		rec := httptest.NewRecorder()

		el.Respond(rec, httptest.NewRequest("POST", "/campaigns", nil), "op", tt.err)

		assert.Equal(t, tt.status, rec.Code)
		body := decode(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, apperr.From(tt.err).Message, body.Message)
		assert.Empty(t, body.Ref)
		assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	}
}

func TestRespond_ServerErrorsHideCause(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := uierrors.NewErrorLogger(zap.New(core))
	rec := httptest.NewRecorder()
	cause := errors.New("connection refused 10.0.0.5:27017")

	el.Respond(rec, httptest.NewRequest("GET", "/campaigns", nil), "list campaigns", apperr.Unavailability(cause))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.NotContains(t, body.Message, "10.0.0.5")
	require.NotEmpty(t, body.Ref)

	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, body.Ref, entry.ContextMap()["ref"], "log line is findable from the response")
	assert.Contains(t, entry.ContextMap()["error"], "connection refused")
}

func TestRespond_UnclassifiedIsInternal(t *testing.T) {
	el := uierrors.NewErrorLogger(zap.NewNop())
	rec := httptest.NewRecorder()
	el.Respond(rec, httptest.NewRequest("GET", "/", nil), "op", errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestLogBadRequest(t *testing.T) {
	el := uierrors.NewErrorLogger(nil)
	rec := httptest.NewRecorder()
	el.LogBadRequest(rec, httptest.NewRequest("POST", "/", nil), "decode", "Invalid campaign id")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid campaign id", decode(t, rec).Message)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	uierrors.NotFound(rec, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	uierrors.MethodNotAllowed(rec, httptest.NewRequest("PATCH", "/campaigns", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
