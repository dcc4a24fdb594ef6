package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/repository"
	"github.com/segyhp/shelfmark/internal/testutil"
	customError "github.com/segyhp/shelfmark/pkg/errors"
)

func newRecord(borrowerID uuid.UUID, catalogItemID string, now time.Time) *domain.BorrowRecord {
	return &domain.BorrowRecord{
		ID:            uuid.New(),
		BorrowerID:    borrowerID,
		CatalogItemID: catalogItemID,
		Title:         "Dune",
		Author:        "Herbert",
		BorrowedAt:    now,
		DueAt:         now.AddDate(0, 0, 14),
		CreatedAt:     now,
	}
}

func TestBorrowRepository_ConcurrentCreateAllowsOneActiveLoan(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewBorrowRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	const attempts = 8
	users := make([]*domain.User, attempts)
	for i := range users {
		users[i] = testutil.InsertUser(t, db, "reader", uuid.NewString()+"@example.com")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(user *domain.User) {
			defer wg.Done()
			<-start
			_, err := repo.Create(context.Background(), newRecord(user.ID, "OL1W", now))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case customError.KindOf(err) == customError.KindConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(users[i])
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)

	active, err := repo.ListByCatalogItem(context.Background(), "OL1W")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestBorrowRepository_ReturnFreesItemAndCannotRepeat(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewBorrowRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	a := testutil.InsertUser(t, db, "A", "a@example.com")
	b := testutil.InsertUser(t, db, "B", "b@example.com")

	first, err := repo.Create(ctx, newRecord(a.ID, "OL1W", now))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newRecord(b.ID, "OL1W", now))
	assert.Equal(t, customError.KindConflict, customError.KindOf(err))

	_, _, err = repo.MarkReturned(ctx, first.ID, b.ID, now)
	assert.Equal(t, customError.KindNotFound, customError.KindOf(err), "non-owner cannot return")

	returned, interested, err := repo.MarkReturned(ctx, first.ID, a.ID, now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, returned.IsReturned)
	require.NotNil(t, returned.ReturnedAt)
	assert.Empty(t, interested)

	_, _, err = repo.MarkReturned(ctx, first.ID, a.ID, now.Add(2*time.Hour))
	assert.Equal(t, customError.KindNotFound, customError.KindOf(err))

	_, err = repo.Create(ctx, newRecord(b.ID, "OL1W", now.Add(3*time.Hour)))
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE borrows SET is_returned = FALSE, returned_at = NULL WHERE id = $1`, first.ID)
	assert.Error(t, err, "returned records cannot be reactivated")
}

func TestBorrowRepository_ReturnListsEveryWishlister(t *testing.T) {
	db := testutil.NewTestDB(t)
	borrows := repository.NewBorrowRepository(db)
	wishlists := repository.NewWishlistRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	owner := testutil.InsertUser(t, db, "Owner", "owner@example.com")
	u1 := testutil.InsertUser(t, db, "U1", "u1@example.com")
	u2 := testutil.InsertUser(t, db, "U2", "u2@example.com")
	u3 := testutil.InsertUser(t, db, "U3", "u3@example.com")

	for _, e := range []struct {
		user *domain.User
		item string
	}{{u1, "OL1W"}, {u2, "OL1W"}, {u3, "OL2W"}} {
		require.NoError(t, wishlists.Create(ctx, &domain.WishlistEntry{
			ID: uuid.New(), UserID: e.user.ID, CatalogItemID: e.item,
			Title: "Dune", Author: "Herbert", AddedAt: now, CreatedAt: now,
		}))
	}

	err := wishlists.Create(ctx, &domain.WishlistEntry{
		ID: uuid.New(), UserID: u1.ID, CatalogItemID: "OL1W",
		Title: "Dune", Author: "Herbert", AddedAt: now, CreatedAt: now,
	})
	assert.Equal(t, customError.KindConflict, customError.KindOf(err))

	loan, err := borrows.Create(ctx, newRecord(owner.ID, "OL1W", now))
	require.NoError(t, err)

	_, interested, err := borrows.MarkReturned(ctx, loan.ID, owner.ID, now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, interested, 2)

	emails := []string{interested[0].Email, interested[1].Email}
	assert.ElementsMatch(t, []string{"u1@example.com", "u2@example.com"}, emails)
}
