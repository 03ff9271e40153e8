// internal/apperr/apperr_test.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("order must contain at least one item"), http.StatusBadRequest},
		{NotFoundf("book %s does not exist", "b1"), http.StatusNotFound},
		{Conflict("cannot update a cancelled order"), http.StatusConflict},
		{Forbidden("admin only"), http.StatusForbidden},
		{Internal("failed to create order", errors.New("connection refused")), http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestWrappedErrorsKeepClassification(t *testing.T) {
	err := fmt.Errorf("update order: %w", Conflict("returned orders can only be reset to PENDING"))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, http.StatusConflict, Status(err))
}

func TestMessageStripsSentinelPrefix(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{Validation("order must contain at least one item"), "order must contain at least one item"},
		{NotFoundf("book %s does not exist", "b1"), "book b1 does not exist"},
		{Conflict("cannot update a cancelled order"), "cannot update a cancelled order"},
		{Forbidden("you do not have permission to delete this suggestion"), "you do not have permission to delete this suggestion"},
		{ErrRateLimited, "rate limit exceeded"},
		{errors.New("unclassified"), "unclassified"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Message(tc.err))
	}
}

func TestInternalKeepsCauseOutOfClassification(t *testing.T) {
	cause := errors.New("pq: connection reset")
	err := Internal("failed to update order status", cause)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "pq: connection reset")
}
