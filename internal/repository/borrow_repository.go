package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/segyhp/shelfmark/internal/domain"
	customError "github.com/segyhp/shelfmark/pkg/errors"
)

const activeBorrowIndex = "borrows_one_active_per_item"

const borrowColumns = `
	b.id, b.user_id, b.catalog_item_id, b.title, b.author,
	b.borrowed_at, b.due_at, b.returned_at, b.is_returned, b.created_at, b.updated_at,
	u.id AS "borrower.id", u.name AS "borrower.name", u.email AS "borrower.email"`

type borrowRepository struct {
	db *sqlx.DB
}

func NewBorrowRepository(db *sqlx.DB) BorrowRepository {
	return &borrowRepository{db: db}
}

func (r *borrowRepository) Create(ctx context.Context, borrow *domain.BorrowRecord) (*domain.BorrowRecord, error) {
	query := `
		WITH b AS (
			INSERT INTO borrows (id, user_id, catalog_item_id, title, author, borrowed_at, due_at, is_returned, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $8)
			RETURNING *
		)
		SELECT ` + borrowColumns + `
		FROM b JOIN users u ON u.id = b.user_id
	`

	var created domain.BorrowRecord
	err := r.db.GetContext(ctx, &created, query,
		borrow.ID,
		borrow.BorrowerID,
		borrow.CatalogItemID,
		borrow.Title,
		borrow.Author,
		borrow.BorrowedAt,
		borrow.DueAt,
		borrow.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, activeBorrowIndex) {
			return nil, customError.WrapBookAlreadyBorrowed(borrow.CatalogItemID)
		}
		if isForeignKeyViolation(err) {
			return nil, customError.WrapUnauthorized("borrower account no longer exists")
		}
		return nil, err
	}

	return &created, nil
}

func (r *borrowRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BorrowRecord, error) {
	query := `
		SELECT ` + borrowColumns + `
		FROM borrows b JOIN users u ON u.id = b.user_id
		WHERE b.id = $1
	`

	var borrow domain.BorrowRecord
	if err := r.db.GetContext(ctx, &borrow, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBorrowNotFound(id.String())
		}
		return nil, err
	}

	return &borrow, nil
}

func (r *borrowRepository) FindActiveByCatalogItem(ctx context.Context, catalogItemID string) (*domain.BorrowRecord, error) {
	query := `
		SELECT ` + borrowColumns + `
		FROM borrows b JOIN users u ON u.id = b.user_id
		WHERE b.catalog_item_id = $1 AND NOT b.is_returned
	`

	var borrow domain.BorrowRecord
	if err := r.db.GetContext(ctx, &borrow, query, catalogItemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &borrow, nil
}

func (r *borrowRepository) ActiveCatalogItems(ctx context.Context, catalogItemIDs []string) (map[string]bool, error) {
	active := make(map[string]bool, len(catalogItemIDs))
	if len(catalogItemIDs) == 0 {
		return active, nil
	}

	query := `
		SELECT catalog_item_id
		FROM borrows
		WHERE catalog_item_id = ANY($1) AND NOT is_returned
	`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, pq.Array(catalogItemIDs)); err != nil {
		return nil, err
	}
	for _, id := range ids {
		active[id] = true
	}

	return active, nil
}

func (r *borrowRepository) ListActive(ctx context.Context) ([]*domain.BorrowRecord, error) {
	query := `
		SELECT ` + borrowColumns + `
		FROM borrows b JOIN users u ON u.id = b.user_id
		WHERE NOT b.is_returned
		ORDER BY b.created_at DESC
	`
	return r.list(ctx, query)
}

func (r *borrowRepository) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*domain.BorrowRecord, error) {
	query := `
		SELECT ` + borrowColumns + `
		FROM borrows b JOIN users u ON u.id = b.user_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`
	return r.list(ctx, query, borrowerID)
}

func (r *borrowRepository) ListByCatalogItem(ctx context.Context, catalogItemID string) ([]*domain.BorrowRecord, error) {
	query := `
		SELECT ` + borrowColumns + `
		FROM borrows b JOIN users u ON u.id = b.user_id
		WHERE b.catalog_item_id = $1
		ORDER BY b.created_at DESC
	`
	return r.list(ctx, query, catalogItemID)
}

func (r *borrowRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.BorrowRecord, error) {
	query := `
		SELECT ` + borrowColumns + `
		FROM borrows b JOIN users u ON u.id = b.user_id
		WHERE NOT b.is_returned AND b.due_at < $1
		ORDER BY b.due_at
	`
	return r.list(ctx, query, now)
}

func (r *borrowRepository) UpdateOwned(ctx context.Context, id, borrowerID uuid.UUID, patch *domain.UpdateBorrowRequest, now time.Time) (*domain.BorrowRecord, error) {
	query := `
		WITH b AS (
			UPDATE borrows
			SET title = COALESCE($3, title),
				author = COALESCE($4, author),
				due_at = COALESCE($5, due_at),
				updated_at = $6
			WHERE id = $1 AND user_id = $2
			RETURNING *
		)
		SELECT ` + borrowColumns + `
		FROM b JOIN users u ON u.id = b.user_id
	`

	var updated domain.BorrowRecord
	err := r.db.GetContext(ctx, &updated, query, id, borrowerID, patch.Title, patch.Author, patch.DueAt, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBorrowNotFound(id.String())
		}
		if isCheckViolation(err) {
			return nil, customError.WrapInvalidArgument("dueAt must be after borrowedAt")
		}
		return nil, err
	}

	return &updated, nil
}

func (r *borrowRepository) MarkReturned(ctx context.Context, id, borrowerID uuid.UUID, now time.Time) (*domain.BorrowRecord, []domain.WishlistInterest, error) {
	query := `
		WITH b AS (
			UPDATE borrows
			SET is_returned = TRUE, returned_at = $3, updated_at = $3
			WHERE id = $1 AND user_id = $2 AND NOT is_returned
			RETURNING *
		)
		SELECT ` + borrowColumns + `
		FROM b JOIN users u ON u.id = b.user_id
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var returned domain.BorrowRecord
	if err := tx.GetContext(ctx, &returned, query, id, borrowerID, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, customError.WrapActiveBorrowNotFound(id.String())
		}
		return nil, nil, err
	}

	// The return only commits together with its wishlist audience.
	interested := []domain.WishlistInterest{}
	if err := tx.SelectContext(ctx, &interested, interestedQuery, returned.CatalogItemID); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &returned, interested, nil
}

func (r *borrowRepository) DeleteOwned(ctx context.Context, id, borrowerID uuid.UUID) error {
	query := `DELETE FROM borrows WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, borrowerID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.WrapBorrowNotFound(id.String())
	}

	return nil
}

func (r *borrowRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.BorrowRecord, error) {
	borrows := []*domain.BorrowRecord{}
	if err := r.db.SelectContext(ctx, &borrows, query, args...); err != nil {
		return nil, err
	}
	return borrows, nil
}
