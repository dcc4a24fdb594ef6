package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/shelfmark/internal/clock"
	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/notifier"
	"github.com/segyhp/shelfmark/internal/repository"
	"github.com/segyhp/shelfmark/internal/service"
	"github.com/segyhp/shelfmark/internal/testutil"
)

// Runs the full borrow, conflict, return, re-borrow flow against Postgres.
func TestBorrowLifecycleScenario(t *testing.T) {
	db := testutil.NewTestDB(t)
	clk := clock.NewManual(time.Now())

	a := testutil.InsertUser(t, db, "A", "a@example.com")
	b := testutil.InsertUser(t, db, "B", "b@example.com")
	fan := testutil.InsertUser(t, db, "Fan", "fan@example.com")

	borrowRepo := repository.NewBorrowRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	borrowSvc := service.NewBorrowService(borrowRepo, service.WithClock(clk))
	wishlistSvc := service.NewWishlistService(wishlistRepo, borrowRepo, clk)

	tokens := tokenTable{
		"a":   {UserID: a.ID, Email: a.Email},
		"b":   {UserID: b.ID, Email: b.Email},
		"fan": {UserID: fan.ID, Email: fan.Email},
	}
	router := NewRouter(Handlers{
		Auth:      tokens,
		Borrows:   NewBorrowHandler(borrowSvc, notifier.NewLogNotifier(quietLogger()), quietLogger()),
		Wishlists: NewWishlistHandler(wishlistSvc, quietLogger()),
	})
	dune := map[string]string{"catalogItemId": "OL1W", "title": "Dune", "author": "Herbert"}

	rec, _ := do(t, router, http.MethodPost, "/api/wishlists", "fan", dune)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := do(t, router, http.MethodPost, "/api/borrows", "a", dune)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created domain.BorrowResponse
	decodeData(t, env, &created)

	rec, env = do(t, router, http.MethodGet, "/api/borrows", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active []domain.BorrowResponse
	decodeData(t, env, &active)
	require.Len(t, active, 1)
	assert.Equal(t, created.ID, active[0].ID)
	assert.False(t, active[0].IsReturned)
	require.NotNil(t, active[0].Borrower)
	assert.Equal(t, "a@example.com", active[0].Borrower.Email)

	rec, _ = do(t, router, http.MethodPost, "/api/borrows", "b", dune)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, router, http.MethodPut, "/api/borrows/"+created.ID.String()+"/return", "b", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "only the borrower may return")

	clk.Advance(time.Hour)
	rec, env = do(t, router, http.MethodPut, "/api/borrows/"+created.ID.String()+"/return", "a", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var returned domain.ReturnBorrowResponse
	decodeData(t, env, &returned)
	assert.True(t, returned.Borrow.IsReturned)
	require.NotNil(t, returned.Borrow.ReturnedAt)
	require.Len(t, returned.Notifications, 1)
	assert.Equal(t, fan.ID, returned.Notifications[0].UserID)
	assert.Equal(t, "fan@example.com", returned.Notifications[0].UserEmail)

	rec, _ = do(t, router, http.MethodPut, "/api/borrows/"+created.ID.String()+"/return", "a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, router, http.MethodPost, "/api/borrows", "b", dune)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/borrows/catalogItem/OL1W", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []domain.BorrowResponse
	decodeData(t, env, &history)
	assert.Len(t, history, 2)
}
