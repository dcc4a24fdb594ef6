package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/shelfmark/pkg/utils"
)

const DefaultLoanDays = 14

// Borrower is the public identity snapshot attached to records.
type Borrower struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
}

// BorrowRecord represents one loan of a catalog item to a user.
// A record with IsReturned == false is an active loan; at most one may
// exist per CatalogItemID.
type BorrowRecord struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	BorrowerID    uuid.UUID  `json:"borrowerId" db:"user_id"`
	CatalogItemID string     `json:"catalogItemId" db:"catalog_item_id"`
	Title         string     `json:"title" db:"title"`
	Author        string     `json:"author" db:"author"`
	BorrowedAt    time.Time  `json:"borrowedAt" db:"borrowed_at"`
	DueAt         time.Time  `json:"dueAt" db:"due_at"`
	ReturnedAt    *time.Time `json:"returnedAt" db:"returned_at"`
	IsReturned    bool       `json:"isReturned" db:"is_returned"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	Borrower      *Borrower  `json:"borrower,omitempty" db:"borrower"`
}

// IsOverdue reports whether the loan is still out past its due date at now.
func (b *BorrowRecord) IsOverdue(now time.Time) bool {
	return !b.IsReturned && now.After(b.DueAt)
}

// DTOs for requests and responses

type CreateBorrowRequest struct {
	CatalogItemID string     `json:"catalogItemId" validate:"required"`
	Title         string     `json:"title" validate:"required"`
	Author        string     `json:"author" validate:"required"`
	DueAt         *time.Time `json:"dueAt,omitempty"`
}

// UpdateBorrowRequest is an owner correction. Lifecycle fields (isReturned,
// returnedAt) and identity fields are deliberately absent.
type UpdateBorrowRequest struct {
	Title  *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Author *string    `json:"author,omitempty" validate:"omitempty,min=1"`
	DueAt  *time.Time `json:"dueAt,omitempty"`
}

// Empty reports whether the patch carries no field.
func (r *UpdateBorrowRequest) Empty() bool {
	return r.Title == nil && r.Author == nil && r.DueAt == nil
}

// BorrowResponse is a record plus the status derived at read time.
type BorrowResponse struct {
	*BorrowRecord
	IsOverdue   bool            `json:"isOverdue"`
	DaysOverdue int             `json:"daysOverdue"`
	LateFee     decimal.Decimal `json:"lateFee"`
}

// NewBorrowResponse derives overdue status and the accrued late fee at now.
func NewBorrowResponse(b *BorrowRecord, now time.Time, feePerDay decimal.Decimal) BorrowResponse {
	resp := BorrowResponse{BorrowRecord: b, LateFee: decimal.Zero}
	if b.IsOverdue(now) {
		resp.IsOverdue = true
		resp.DaysOverdue = utils.DaysOverdue(b.DueAt, now)
		resp.LateFee = utils.CalculateLateFee(feePerDay, resp.DaysOverdue)
	}
	return resp
}

// NewBorrowResponses maps NewBorrowResponse over records.
func NewBorrowResponses(records []*BorrowRecord, now time.Time, feePerDay decimal.Decimal) []BorrowResponse {
	out := make([]BorrowResponse, 0, len(records))
	for _, b := range records {
		out = append(out, NewBorrowResponse(b, now, feePerDay))
	}
	return out
}

type ReturnBorrowResponse struct {
	Borrow        BorrowResponse          `json:"borrow"`
	Notifications []NotificationCandidate `json:"notifications"`
}

type AvailabilityResponse struct {
	CatalogItemID string `json:"catalogItemId"`
	IsAvailable   bool   `json:"isAvailable"`
}
