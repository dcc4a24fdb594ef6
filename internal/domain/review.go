package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is one user's rating of a catalog item; unique per (user, item).
type Review struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	CatalogItemID string    `json:"catalogItemId" db:"catalog_item_id"`
	Title         string    `json:"title" db:"title"`
	Author        string    `json:"author" db:"author"`
	Rating        int       `json:"rating" db:"rating"`
	Body          string    `json:"review" db:"body"`
	CoverURL      string    `json:"coverUrl,omitempty" db:"cover_url"`
	PublishYear   string    `json:"publishYear,omitempty" db:"publish_year"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	Reviewer      *Borrower `json:"user,omitempty" db:"reviewer"`
}

type CreateReviewRequest struct {
	CatalogItemID string `json:"catalogItemId" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Body          string `json:"review" validate:"required"`
	CoverURL      string `json:"coverUrl" validate:"omitempty,url"`
	PublishYear   string `json:"publishYear"`
}

type UpdateReviewRequest struct {
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Body   *string `json:"review,omitempty" validate:"omitempty,min=1"`
}
