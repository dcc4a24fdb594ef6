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

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	clock      clock.Clock
}

func NewReviewService(reviewRepo repository.ReviewRepository, clk clock.Clock) *ReviewService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &ReviewService{reviewRepo: reviewRepo, clock: clk}
}

func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	reviews, err := s.reviewRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return reviews, nil
}

func (s *ReviewService) ListByCatalogItem(ctx context.Context, rawCatalogItemID string) ([]*domain.Review, error) {
	catalogItemID, err := domain.NormalizeCatalogItemID(rawCatalogItemID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByCatalogItem(ctx, catalogItemID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return reviews, nil
}

func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return review, nil
}

func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, request *domain.CreateReviewRequest) (*domain.Review, error) {
	catalogItemID, err := domain.NormalizeCatalogItemID(request.CatalogItemID)
	if err != nil {
		return nil, err
	}
	if request.Rating < 1 || request.Rating > 5 {
		return nil, customError.WrapInvalidArgument("rating must be between 1 and 5")
	}
	body := strings.TrimSpace(request.Body)
	if body == "" {
		return nil, customError.WrapInvalidArgument("review text is required")
	}

	review := &domain.Review{
		ID:            uuid.New(),
		UserID:        userID,
		CatalogItemID: catalogItemID,
		Title:         strings.TrimSpace(request.Title),
		Author:        strings.TrimSpace(request.Author),
		Rating:        request.Rating,
		Body:          body,
		CoverURL:      request.CoverURL,
		PublishYear:   request.PublishYear,
		CreatedAt:     s.clock.Now(),
	}

	created, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return created, nil
}

func (s *ReviewService) UpdateOwned(ctx context.Context, id, userID uuid.UUID, patch *domain.UpdateReviewRequest) (*domain.Review, error) {
	if patch == nil || (patch.Rating == nil && patch.Body == nil) {
		return nil, customError.WrapInvalidArgument("nothing to update")
	}
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return nil, customError.WrapInvalidArgument("rating must be between 1 and 5")
	}
	if patch.Body != nil {
		*patch.Body = strings.TrimSpace(*patch.Body)
		if *patch.Body == "" {
			return nil, customError.WrapInvalidArgument("review text must not be blank")
		}
	}

	updated, err := s.reviewRepo.UpdateOwned(ctx, id, userID, patch, s.clock.Now())
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return updated, nil
}

func (s *ReviewService) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.reviewRepo.DeleteOwned(ctx, id, userID); err != nil {
		return wrapRepoError(err)
	}
	return nil
}
