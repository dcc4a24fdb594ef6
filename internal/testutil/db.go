package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/repository"
)

const testDBLockID int64 = 731900115

// NewTestDB connects to TEST_DATABASE_URL, applies migrations and empties all
// tables. Tests are skipped when the variable is unset or Postgres is down.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("skipping Postgres integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		t.Skipf("skipping Postgres integration test: %v", err)
	}
	db.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = db.Close() })

	lockTestDB(t, db)

	if err := repository.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	TruncateAll(t, db)

	return db
}

// TruncateAll empties every application table.
func TruncateAll(t *testing.T, db *sqlx.DB) {
	t.Helper()
	if _, err := db.Exec(`TRUNCATE reviews, wishlists, borrows, users CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

// InsertUser stores an account with a dummy credential and returns it.
func InsertUser(t *testing.T, db *sqlx.DB, name, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "unused",
		Salt:         "unused",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return user
}

func lockTestDB(t *testing.T, db *sqlx.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Connx(ctx)
	if err != nil {
		t.Fatalf("acquire lock conn: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, testDBLockID); err != nil {
		_ = conn.Close()
		t.Fatalf("acquire test lock: %v", err)
	}

	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, testDBLockID)
		_ = conn.Close()
	})
}
