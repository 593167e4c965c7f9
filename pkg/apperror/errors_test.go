package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{ErrNotConfigured, http.StatusServiceUnavailable},
		{ErrStorage, http.StatusInternalServerError},
		{ErrFanout, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MapErrorToStatus(tc.err), tc.err.Error())
		// Services wrap sentinels with context; the mapping must survive that.
		wrapped := fmt.Errorf("%w: details", tc.err)
		assert.Equal(t, tc.want, MapErrorToStatus(wrapped))
	}
}

func TestAppError(t *testing.T) {
	inner := errors.New("boom")
	err := New(http.StatusConflict, "conflict", inner)

	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, inner)

	noInner := New(http.StatusConflict, "conflict", nil)
	assert.Equal(t, "conflict", noInner.Error())
}
