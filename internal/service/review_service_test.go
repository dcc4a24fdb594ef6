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

func TestReviewService_Create(t *testing.T) {
	reviews := &mocks.MockReviewRepository{}
	svc := NewReviewService(reviews, clock.NewManual(t0))
	user := uuid.New()

	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return r.CatalogItemID == "OL1W" && r.Rating == 4 && r.Body == "Great"
	})).Return(&domain.Review{ID: uuid.New(), CatalogItemID: "OL1W", Rating: 4}, nil)

	review, err := svc.Create(context.Background(), user, &domain.CreateReviewRequest{
		CatalogItemID: "/works/OL1W", Title: "Dune", Author: "Herbert", Rating: 4, Body: " Great ",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	reviews.AssertExpectations(t)
}

func TestReviewService_CreateRejectsBadRating(t *testing.T) {
	svc := NewReviewService(&mocks.MockReviewRepository{}, clock.NewManual(t0))

	for _, rating := range []int{0, 6} {
		_, err := svc.Create(context.Background(), uuid.New(), &domain.CreateReviewRequest{
			CatalogItemID: "OL1W", Title: "Dune", Author: "Herbert", Rating: rating, Body: "ok",
		})
		assert.Equal(t, customError.KindInvalidArgument, customError.KindOf(err))
	}
}

func TestReviewService_UpdateOwned(t *testing.T) {
	reviews := &mocks.MockReviewRepository{}
	svc := NewReviewService(reviews, clock.NewManual(t0))
	id, owner := uuid.New(), uuid.New()
	rating := 5
	bad := 9

	reviews.On("UpdateOwned", mock.Anything, id, owner, mock.Anything, t0).
		Return(&domain.Review{ID: id, Rating: 5}, nil)

	updated, err := svc.UpdateOwned(context.Background(), id, owner, &domain.UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	_, err = svc.UpdateOwned(context.Background(), id, owner, &domain.UpdateReviewRequest{Rating: &bad})
	assert.Equal(t, customError.KindInvalidArgument, customError.KindOf(err))

	_, err = svc.UpdateOwned(context.Background(), id, owner, &domain.UpdateReviewRequest{})
	assert.Equal(t, customError.KindInvalidArgument, customError.KindOf(err))
}
