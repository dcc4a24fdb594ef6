package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/shelfmark/internal/clock"
	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/mocks"
	customError "github.com/segyhp/shelfmark/pkg/errors"
)

func TestWishlistService_ListTagsAvailability(t *testing.T) {
	wishlists := &mocks.MockWishlistRepository{}
	borrows := &mocks.MockBorrowRepository{}
	svc := NewWishlistService(wishlists, borrows, clock.NewManual(t0))
	user := uuid.New()

	entries := []*domain.WishlistEntry{
		{ID: uuid.New(), UserID: user, CatalogItemID: "OL1W"},
		{ID: uuid.New(), UserID: user, CatalogItemID: "OL2W"},
	}
	wishlists.On("ListByUser", mock.Anything, user).Return(entries, nil)
	borrows.On("ActiveCatalogItems", mock.Anything, []string{"OL1W", "OL2W"}).Return(map[string]bool{"OL1W": true}, nil)

	items, err := svc.List(context.Background(), user)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.False(t, items[0].IsAvailable)
	assert.True(t, items[1].IsAvailable)
}

func TestWishlistService_Add(t *testing.T) {
	wishlists := &mocks.MockWishlistRepository{}
	borrows := &mocks.MockBorrowRepository{}
	svc := NewWishlistService(wishlists, borrows, clock.NewManual(t0))
	user := uuid.New()

	borrows.On("ActiveCatalogItems", mock.Anything, []string{"OL1W"}).Return(map[string]bool{"OL1W": true}, nil)

	wishlists.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.WishlistEntry) bool {
		return e.CatalogItemID == "OL1W" && e.UserID == user && e.AddedAt.Equal(t0)
	})).Return(nil).Once()
	wishlists.On("Create", mock.Anything, mock.Anything).Return(customError.WrapWishlistDuplicate()).Once()

	entry, err := svc.Add(context.Background(), user, &domain.AddWishlistRequest{
		CatalogItemID: "/works/OL1W", Title: "Dune", Author: "Herbert",
	})
	require.NoError(t, err)
	assert.Equal(t, "OL1W", entry.CatalogItemID)
	assert.False(t, entry.IsAvailable, "item is on loan")

	_, err = svc.Add(context.Background(), user, &domain.AddWishlistRequest{
		CatalogItemID: "OL1W", Title: "Dune", Author: "Herbert",
	})
	assert.Equal(t, customError.KindConflict, customError.KindOf(err))

	_, err = svc.Add(context.Background(), user, &domain.AddWishlistRequest{CatalogItemID: "x", Title: "Dune", Author: "Herbert"})
	assert.Equal(t, customError.KindInvalidArgument, customError.KindOf(err))
}

func TestWishlistService_Remove(t *testing.T) {
	wishlists := &mocks.MockWishlistRepository{}
	svc := NewWishlistService(wishlists, &mocks.MockBorrowRepository{}, clock.NewManual(t0))
	id, user := uuid.New(), uuid.New()
	wishlists.On("DeleteOwned", mock.Anything, id, user).Return(customError.WrapWishlistNotFound(id.String()))

	err := svc.Remove(context.Background(), id, user)

	assert.Equal(t, customError.KindNotFound, customError.KindOf(err))
}

func TestWishlistService_AddReportsAvailability(t *testing.T) {
	wishlists := &mocks.MockWishlistRepository{}
	borrows := &mocks.MockBorrowRepository{}
	svc := NewWishlistService(wishlists, borrows, clock.NewManual(t0))

	wishlists.On("Create", mock.Anything, mock.Anything).Return(nil)
	borrows.On("ActiveCatalogItems", mock.Anything, []string{"OL9W"}).Return(map[string]bool{}, nil)

	item, err := svc.Add(context.Background(), uuid.New(), &domain.AddWishlistRequest{
		CatalogItemID: "OL9W", Title: "Emma", Author: "Austen", Notes: "  gift  ",
	})

	require.NoError(t, err)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, "gift", item.Notes)
	borrows.AssertExpectations(t)
}
