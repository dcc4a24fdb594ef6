package domain

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	NotificationAvailable = "available"
	NotificationOverdue   = "overdue"
)

// NotificationCandidate is a message composed for delivery to one user.
// Composing it never sends anything; delivery is up to a notifier sink.
type NotificationCandidate struct {
	Kind          string    `json:"kind"`
	UserID        uuid.UUID `json:"userId"`
	UserEmail     string    `json:"userEmail"`
	CatalogItemID string    `json:"catalogItemId"`
	Message       string    `json:"message"`
}

// NewAvailableNotification tells an interested user that a book is back.
func NewAvailableNotification(interest WishlistInterest, b *BorrowRecord) NotificationCandidate {
	return NotificationCandidate{
		Kind:          NotificationAvailable,
		UserID:        interest.UserID,
		UserEmail:     interest.Email,
		CatalogItemID: b.CatalogItemID,
		Message:       fmt.Sprintf("The book \"%s\" is now available!", b.Title),
	}
}

// NewOverdueNotification reminds a borrower that a loan is past due.
func NewOverdueNotification(b *BorrowRecord) NotificationCandidate {
	n := NotificationCandidate{
		Kind:          NotificationOverdue,
		UserID:        b.BorrowerID,
		CatalogItemID: b.CatalogItemID,
		Message: fmt.Sprintf("The book \"%s\" was due on %s. Please return it.",
			b.Title, b.DueAt.Format("2006-01-02")),
	}
	if b.Borrower != nil {
		n.UserEmail = b.Borrower.Email
	}
	return n
}
