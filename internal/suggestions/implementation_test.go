// internal/suggestions/implementation_test.go
package suggestions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"libris/internal/apperr"
)

// Validation and rate limiting run before any persistence access, so both
// are testable without a database.

func TestCreateRequiresFields(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{LitPeriod: "Romanticism", BornDate: "1799-06-06"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "missing name")

	_, err = svc.Create(ctx, CreateParams{Name: "Alexander Pushkin", BornDate: "1799-06-06"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "missing litPeriod")

	_, err = svc.Create(ctx, CreateParams{Name: "Alexander Pushkin", LitPeriod: "Romanticism"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "missing bornDate")

	_, err = svc.Create(ctx, CreateParams{
		Name: "Alexander Pushkin", LitPeriod: "Romanticism", BornDate: "1799-06-06",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation, "anonymous submissions must carry suggestedByName")
}

func TestCreateRateLimited(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	// the burst allows five submissions; each fails validation after the
	// limiter has already consumed a token
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, CreateParams{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	}

	_, err := svc.Create(ctx, CreateParams{})
	assert.ErrorIs(t, err, apperr.ErrRateLimited)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, Status("DRAFT").Valid())
	assert.False(t, Status("").Valid())
}
