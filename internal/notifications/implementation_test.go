// internal/notifications/implementation_test.go
package notifications

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libris/internal/apperr"
	"libris/internal/messaging"
)

// setupTestDB connects to a local PostgreSQL instance and creates the
// notifications schema. The test is skipped when no database is reachable.
func setupTestDB(t testing.TB) *sql.DB {
	t.Helper()

	pgUser := os.Getenv("PGUSER")
	pgPassword := os.Getenv("PGPASSWORD")
	pgHost := os.Getenv("PGHOST")
	pgPort := os.Getenv("PGPORT")
	pgDB := os.Getenv("PGDATABASE")

	if pgUser == "" {
		pgUser = "user"
	}
	if pgPassword == "" {
		pgPassword = "password"
	}
	if pgHost == "" {
		pgHost = "localhost"
	}
	if pgPort == "" {
		pgPort = "5432"
	}
	if pgDB == "" {
		pgDB = "testdb"
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pgHost, pgPort, pgUser, pgPassword, pgDB)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("skipping: could not connect to postgres: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			user_email TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("TRUNCATE TABLE notifications")
		db.Close()
	})

	return db
}

// failingPublisher rejects every message, standing in for a broker outage.
type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, any) error {
	return fmt.Errorf("broker unavailable")
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(nil, messaging.Nop{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{Message: "your order shipped"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "missing userId")

	_, err = svc.Create(ctx, CreateParams{UserID: "user-1"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "missing message")

	_, err = svc.CreateOrderNotification(ctx, OrderParams{Message: "order placed"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "missing userEmail")

	_, err = svc.CreateReturnNotification(ctx, OrderParams{UserEmail: "reader@example.com"})
	assert.ErrorIs(t, err, apperr.ErrValidation, "missing message")
}

// Unlike order lifecycle events, notification announcements are part of the
// operation: a broker failure fails the create.
func TestCreatePropagatesPublishFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, failingPublisher{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{UserID: "user-1", Message: "your order shipped"})
	assert.ErrorIs(t, err, apperr.ErrInternal)

	_, err = svc.CreateOrderNotification(ctx, OrderParams{
		UserEmail: "reader@example.com", Message: "order placed", Type: "ORDER",
	})
	assert.ErrorIs(t, err, apperr.ErrInternal)
}

func TestMarkAsReadPropagatesPublishFailure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created, err := NewService(db, messaging.Nop{}).Create(ctx, CreateParams{
		UserID: "user-1", Message: "your order shipped",
	})
	require.NoError(t, err)

	_, err = NewService(db, failingPublisher{}).MarkAsRead(ctx, created.ID.String())
	assert.ErrorIs(t, err, apperr.ErrInternal)
}

func TestCreateAndMarkAsRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, messaging.Nop{})
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateParams{UserID: "user-1", Message: "your order shipped", Type: "ORDER"})
	require.NoError(t, err)
	assert.False(t, created.IsRead)

	read, err := svc.MarkAsRead(ctx, created.ID.String())
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	assert.Equal(t, created.ID, read.ID)
}

func TestMarkAsReadErrors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, messaging.Nop{})
	ctx := context.Background()

	_, err := svc.MarkAsRead(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.MarkAsRead(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFindByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, messaging.Nop{})
	ctx := context.Background()

	_, err := svc.FindByUser(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	empty, err := svc.FindByUser(ctx, "user-without-notifications")
	require.NoError(t, err)
	assert.Empty(t, empty, "no notifications is a valid empty result")

	for _, msg := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, CreateParams{UserID: "user-2", Message: msg})
		require.NoError(t, err)
	}

	result, err := svc.FindByUser(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "third", result[0].Message, "newest first")
	for _, n := range result {
		assert.Equal(t, "user-2", n.UserID)
	}
}
