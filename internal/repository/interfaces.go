package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/shelfmark/internal/domain"
)

// BorrowRepository defines the interface for borrow record data operations
type BorrowRepository interface {
	// Create inserts an active record and returns it with the borrower attached.
	// A second active record for the same catalog item fails with a conflict.
	Create(ctx context.Context, borrow *domain.BorrowRecord) (*domain.BorrowRecord, error)

	// GetByID retrieves a record by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BorrowRecord, error)

	// FindActiveByCatalogItem returns the active record for an item, or nil
	FindActiveByCatalogItem(ctx context.Context, catalogItemID string) (*domain.BorrowRecord, error)

	// ActiveCatalogItems reports which of the given items are currently on loan
	ActiveCatalogItems(ctx context.Context, catalogItemIDs []string) (map[string]bool, error)

	// ListActive returns every unreturned record, newest first
	ListActive(ctx context.Context) ([]*domain.BorrowRecord, error)

	// ListByBorrower returns a user's records, newest first
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*domain.BorrowRecord, error)

	// ListByCatalogItem returns an item's records, newest first
	ListByCatalogItem(ctx context.Context, catalogItemID string) ([]*domain.BorrowRecord, error)

	// ListOverdue returns unreturned records due before now, oldest due first
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.BorrowRecord, error)

	// UpdateOwned applies a correction to a record owned by borrowerID
	UpdateOwned(ctx context.Context, id, borrowerID uuid.UUID, patch *domain.UpdateBorrowRequest, now time.Time) (*domain.BorrowRecord, error)

	// MarkReturned flips an active record owned by borrowerID to returned and,
	// in the same transaction, lists who wishlisted its catalog item
	MarkReturned(ctx context.Context, id, borrowerID uuid.UUID, now time.Time) (*domain.BorrowRecord, []domain.WishlistInterest, error)

	// DeleteOwned removes a record owned by borrowerID
	DeleteOwned(ctx context.Context, id, borrowerID uuid.UUID) error
}

// WishlistRepository defines the interface for wishlist data operations
type WishlistRepository interface {
	Create(ctx context.Context, entry *domain.WishlistEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistEntry, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	List(ctx context.Context) ([]*domain.Review, error)
	ListByCatalogItem(ctx context.Context, catalogItemID string) ([]*domain.Review, error)
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, patch *domain.UpdateReviewRequest, now time.Time) (*domain.Review, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}

// UserRepository defines the interface for account data operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail returns nil when no account matches
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
