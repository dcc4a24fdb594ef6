package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/segyhp/shelfmark/internal/clock"
	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/repository"
	customError "github.com/segyhp/shelfmark/pkg/errors"
)

type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	borrowRepo   repository.BorrowRepository
	clock        clock.Clock
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, borrowRepo repository.BorrowRepository, clk clock.Clock) *WishlistService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &WishlistService{wishlistRepo: wishlistRepo, borrowRepo: borrowRepo, clock: clk}
}

// List returns the user's wishlist, each entry tagged with current availability.
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItemResponse, error) {
	entries, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.CatalogItemID)
	}
	onLoan, err := s.borrowRepo.ActiveCatalogItems(ctx, ids)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	items := make([]domain.WishlistItemResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.WishlistItemResponse{WishlistEntry: e, IsAvailable: !onLoan[e.CatalogItemID]})
	}
	return items, nil
}

// Add saves interest in a catalog item and reports whether it can be borrowed now.
func (s *WishlistService) Add(ctx context.Context, userID uuid.UUID, request *domain.AddWishlistRequest) (*domain.WishlistItemResponse, error) {
	catalogItemID, err := domain.NormalizeCatalogItemID(request.CatalogItemID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(request.Title)
	author := strings.TrimSpace(request.Author)
	if title == "" || author == "" {
		return nil, customError.WrapInvalidArgument("title and author are required")
	}

	now := s.clock.Now()
	entry := &domain.WishlistEntry{
		ID:            uuid.New(),
		UserID:        userID,
		CatalogItemID: catalogItemID,
		Title:         title,
		Author:        author,
		Notes:         strings.TrimSpace(request.Notes),
		AddedAt:       now,
		CreatedAt:     now,
	}
	if err := s.wishlistRepo.Create(ctx, entry); err != nil {
		return nil, wrapRepoError(err)
	}

	onLoan, err := s.borrowRepo.ActiveCatalogItems(ctx, []string{catalogItemID})
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return &domain.WishlistItemResponse{WishlistEntry: entry, IsAvailable: !onLoan[catalogItemID]}, nil
}

func (s *WishlistService) Remove(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.wishlistRepo.DeleteOwned(ctx, id, userID); err != nil {
		return wrapRepoError(err)
	}
	return nil
}
