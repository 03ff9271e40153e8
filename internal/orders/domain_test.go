// internal/orders/domain_test.go
package orders

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"libris/internal/apperr"
)

var allStatuses = []Status{
	StatusPending, StatusApproved, StatusDeclined,
	StatusCompleted, StatusCancelled, StatusReturned,
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("SHIPPED")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = ParseStatus("pending")
	assert.True(t, errors.Is(err, apperr.ErrValidation), "status comparison is case-sensitive")
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		current  Status
		next     Status
		rejected bool
	}{
		{"pending to approved", StatusPending, StatusApproved, false},
		{"pending to declined", StatusPending, StatusDeclined, false},
		{"approved to completed", StatusApproved, StatusCompleted, false},
		{"declined back to pending", StatusDeclined, StatusPending, false},
		{"completed back to approved", StatusCompleted, StatusApproved, false},
		{"cancelled to pending", StatusCancelled, StatusPending, true},
		{"cancelled to approved", StatusCancelled, StatusApproved, true},
		{"cancelled to cancelled", StatusCancelled, StatusCancelled, true},
		{"returned to pending", StatusReturned, StatusPending, false},
		{"returned to approved", StatusReturned, StatusApproved, true},
		{"returned to completed", StatusReturned, StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.current, tt.next)
			if tt.rejected {
				assert.True(t, errors.Is(err, apperr.ErrConflict))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(StatusPending))
	assert.NoError(t, CanCancel(StatusApproved))
	assert.NoError(t, CanCancel(StatusDeclined))
	assert.NoError(t, CanCancel(StatusReturned))
	assert.True(t, errors.Is(CanCancel(StatusCancelled), apperr.ErrConflict))
	assert.True(t, errors.Is(CanCancel(StatusCompleted), apperr.ErrConflict))
}

func TestCanReturn(t *testing.T) {
	assert.NoError(t, CanReturn(StatusCompleted))
	for _, s := range allStatuses {
		if s == StatusCompleted {
			continue
		}
		assert.True(t, errors.Is(CanReturn(s), apperr.ErrConflict), "status %s", s)
	}
}

func TestValidateItems(t *testing.T) {
	bookA := uuid.NewString()
	bookB := uuid.NewString()

	t.Run("valid items keep order", func(t *testing.T) {
		ids, err := ValidateItems([]ItemRequest{
			{BookID: bookA, Quantity: 1},
			{BookID: bookB, Quantity: 3},
		})
		require.NoError(t, err)
		require.Len(t, ids, 2)
		assert.Equal(t, bookA, ids[0].String())
		assert.Equal(t, bookB, ids[1].String())
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := ValidateItems(nil)
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})

	t.Run("malformed book ID", func(t *testing.T) {
		_, err := ValidateItems([]ItemRequest{{BookID: "not-a-uuid", Quantity: 1}})
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := ValidateItems([]ItemRequest{{BookID: bookA, Quantity: 0}})
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})

	t.Run("duplicate book", func(t *testing.T) {
		_, err := ValidateItems([]ItemRequest{
			{BookID: bookA, Quantity: 1},
			{BookID: bookA, Quantity: 2},
		})
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})
}

// Property: a cancelled order rejects every further status update, and
// cancel itself is never accepted twice.
func TestCancelledIsTerminal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		next := rapid.SampledFrom(allStatuses).Draw(t, "next")
		assert.Error(t, CanTransition(StatusCancelled, next))
		assert.Error(t, CanCancel(StatusCancelled))
	})
}

// Property: RETURNED accepts exactly one outgoing transition, to PENDING.
func TestReturnedOnlyResetsToPending(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		next := rapid.SampledFrom(allStatuses).Draw(t, "next")
		err := CanTransition(StatusReturned, next)
		if next == StatusPending {
			assert.NoError(t, err)
		} else {
			assert.Error(t, err)
		}
	})
}

// Property: any status other than CANCELLED and RETURNED accepts any next
// status under the generic guard.
func TestOpenStatusesAcceptAnyUpdate(t *testing.T) {
	open := []Status{StatusPending, StatusApproved, StatusDeclined, StatusCompleted}
	rapid.Check(t, func(t *rapid.T) {
		current := rapid.SampledFrom(open).Draw(t, "current")
		next := rapid.SampledFrom(allStatuses).Draw(t, "next")
		assert.NoError(t, CanTransition(current, next))
	})
}
