// internal/tags/implementation_test.go
package tags

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
)

// setupTestDB connects to a local PostgreSQL instance and creates the tags
// schema. The test is skipped when no database is reachable.
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
		CREATE TABLE IF NOT EXISTS tags (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("TRUNCATE TABLE tags")
		db.Close()
	})

	return db
}

// Duplicate tag names are a validation failure, not a conflict; the 400 is
// part of the public contract.
func TestCreateRejectsDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, "classic")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "classic")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.NotErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Create(ctx, "  ")
	assert.ErrorIs(t, err, apperr.ErrValidation, "blank name")
}

func TestUpdateKeepsNamesUnique(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, "classic")
	require.NoError(t, err)
	tag, err := svc.Create(ctx, "dystopia")
	require.NoError(t, err)

	_, err = svc.Update(ctx, tag.ID.String(), "classic")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	renamed, err := svc.Update(ctx, tag.ID.String(), "dystopian")
	require.NoError(t, err)
	assert.Equal(t, "dystopian", renamed.Name)

	// renaming a tag to its own name is not a collision
	same, err := svc.Update(ctx, tag.ID.String(), "dystopian")
	require.NoError(t, err)
	assert.Equal(t, "dystopian", same.Name)
}

func TestGetAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	tag, err := svc.Create(ctx, "classic")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tag.ID.String()))
	_, err = svc.Get(ctx, tag.ID.String())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for _, name := range []string{"classic", "russian classic", "sci-fi"} {
		_, err := svc.Create(ctx, name)
		require.NoError(t, err)
	}

	_, err := svc.Search(ctx, "  ")
	assert.ErrorIs(t, err, apperr.ErrValidation, "blank query")

	found, err := svc.Search(ctx, "CLASSIC")
	require.NoError(t, err)
	assert.Len(t, found, 2, "match is case-insensitive")

	none, err := svc.Search(ctx, "poetry")
	require.NoError(t, err)
	assert.Empty(t, none)
}
