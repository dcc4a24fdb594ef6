package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/shelfmark/internal/domain"
	customError "github.com/segyhp/shelfmark/pkg/errors"
)

const reviewUserItemKey = "reviews_user_item_key"

const reviewColumns = `
	r.id, r.user_id, r.catalog_item_id, r.title, r.author, r.rating, r.body,
	r.cover_url, r.publish_year, r.created_at, r.updated_at,
	u.id AS "reviewer.id", u.name AS "reviewer.name", u.email AS "reviewer.email"`

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	query := `
		WITH r AS (
			INSERT INTO reviews (id, user_id, catalog_item_id, title, author, rating, body, cover_url, publish_year, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
			RETURNING *
		)
		SELECT ` + reviewColumns + `
		FROM r JOIN users u ON u.id = r.user_id
	`

	var created domain.Review
	err := r.db.GetContext(ctx, &created, query,
		review.ID,
		review.UserID,
		review.CatalogItemID,
		review.Title,
		review.Author,
		review.Rating,
		review.Body,
		review.CoverURL,
		review.PublishYear,
		review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, reviewUserItemKey) {
			return nil, customError.WrapReviewDuplicate()
		}
		if isCheckViolation(err) {
			return nil, customError.WrapInvalidArgument("rating must be between 1 and 5")
		}
		return nil, err
	}

	return &created, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`

	var review domain.Review
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapReviewNotFound(id.String())
		}
		return nil, err
	}

	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC
	`

	reviews := []*domain.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByCatalogItem(ctx context.Context, catalogItemID string) ([]*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.catalog_item_id = $1
		ORDER BY r.created_at DESC
	`

	reviews := []*domain.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, catalogItemID); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, patch *domain.UpdateReviewRequest, now time.Time) (*domain.Review, error) {
	query := `
		WITH r AS (
			UPDATE reviews
			SET rating = COALESCE($3, rating),
				body = COALESCE($4, body),
				updated_at = $5
			WHERE id = $1 AND user_id = $2
			RETURNING *
		)
		SELECT ` + reviewColumns + `
		FROM r JOIN users u ON u.id = r.user_id
	`

	var updated domain.Review
	if err := r.db.GetContext(ctx, &updated, query, id, userID, patch.Rating, patch.Body, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapReviewNotFound(id.String())
		}
		if isCheckViolation(err) {
			return nil, customError.WrapInvalidArgument("rating must be between 1 and 5")
		}
		return nil, err
	}

	return &updated, nil
}

func (r *reviewRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.WrapReviewNotFound(id.String())
	}

	return nil
}
