package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.NotFound, http.StatusNotFound},
		{apperr.Authorization, http.StatusForbidden},
		{apperr.Conflict, http.StatusConflict},
		{apperr.PreconditionFailed, http.StatusBadRequest},
		{apperr.Validation, http.StatusBadRequest},
		{apperr.Unavailable, http.StatusServiceUnavailable},
		{apperr.Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("join: %w", apperr.NewPreconditionFailed("campaign is full"))

	assert.True(t, errors.Is(err, apperr.ErrPreconditionFailed))
	assert.False(t, errors.Is(err, apperr.ErrConflict))
	assert.Equal(t, apperr.PreconditionFailed, apperr.KindOf(err))
}

func TestUnavailability_HidesCause(t *testing.T) {
	cause := errors.New("connection refused 10.0.0.5:27017")
	e := apperr.Unavailability(cause)

	assert.Equal(t, apperr.Unavailable, e.Kind)
	assert.NotContains(t, e.Message, "10.0.0.5")
	assert.NotEmpty(t, e.Ref)
	assert.ErrorIs(t, e, cause)
}

func TestFrom(t *testing.T) {
	assert.Nil(t, apperr.From(nil))

	nf := apperr.NewNotFound("campaign not found")
	require.Same(t, nf, apperr.From(fmt.Errorf("wrapped: %w", nf)))

	raw := errors.New("boom")
	got := apperr.From(raw)
	assert.Equal(t, apperr.Internal, got.Kind)
	assert.NotContains(t, got.Message, "boom")
	assert.ErrorIs(t, got, raw)
}
