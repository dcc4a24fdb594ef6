package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/shelfmark/internal/domain"
	customError "github.com/segyhp/shelfmark/pkg/errors"
)

const wishlistUserItemKey = "wishlists_user_item_key"

const interestedQuery = `
	SELECT w.user_id, u.email
	FROM wishlists w JOIN users u ON u.id = w.user_id
	WHERE w.catalog_item_id = $1
	ORDER BY w.created_at
`

type wishlistRepository struct {
	db *sqlx.DB
}

func NewWishlistRepository(db *sqlx.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, entry *domain.WishlistEntry) error {
	query := `
		INSERT INTO wishlists (id, user_id, catalog_item_id, title, author, notes, added_at, created_at)
		VALUES (:id, :user_id, :catalog_item_id, :title, :author, :notes, :added_at, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		if isUniqueViolation(err, wishlistUserItemKey) {
			return customError.WrapWishlistDuplicate()
		}
		return err
	}

	return nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistEntry, error) {
	query := `
		SELECT id, user_id, catalog_item_id, title, author, notes, added_at, created_at
		FROM wishlists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	entries := []*domain.WishlistEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *wishlistRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM wishlists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.WrapWishlistNotFound(id.String())
	}

	return nil
}
