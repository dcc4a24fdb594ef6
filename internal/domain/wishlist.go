package domain

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry is a user's interest in a catalog item, unique per (user, item).
type WishlistEntry struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	CatalogItemID string    `json:"catalogItemId" db:"catalog_item_id"`
	Title         string    `json:"title" db:"title"`
	Author        string    `json:"author" db:"author"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
	AddedAt       time.Time `json:"addedAt" db:"added_at"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// WishlistInterest is who to notify when an item comes back.
type WishlistInterest struct {
	UserID uuid.UUID `db:"user_id"`
	Email  string    `db:"email"`
}

type AddWishlistRequest struct {
	CatalogItemID string `json:"catalogItemId" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	Notes         string `json:"notes" validate:"max=1000"`
}

type WishlistItemResponse struct {
	*WishlistEntry
	IsAvailable bool `json:"isAvailable"`
}
