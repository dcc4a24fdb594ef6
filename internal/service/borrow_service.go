package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/shelfmark/internal/clock"
	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/repository"
	customError "github.com/segyhp/shelfmark/pkg/errors"
	"github.com/segyhp/shelfmark/pkg/utils"
)

// BorrowService owns the borrow lifecycle: create, correct, return, delete
// and the derived views over borrow records.
type BorrowService struct {
	borrowRepo repository.BorrowRepository
	clock      clock.Clock
	loanDays   int
	lateFee    decimal.Decimal
}

type BorrowOption func(*BorrowService)

func WithClock(c clock.Clock) BorrowOption {
	return func(s *BorrowService) { s.clock = c }
}

func WithLoanDays(days int) BorrowOption {
	return func(s *BorrowService) {
		if days > 0 {
			s.loanDays = days
		}
	}
}

func WithLateFeePerDay(fee decimal.Decimal) BorrowOption {
	return func(s *BorrowService) { s.lateFee = fee }
}

func NewBorrowService(borrowRepo repository.BorrowRepository, opts ...BorrowOption) *BorrowService {
	s := &BorrowService{
		borrowRepo: borrowRepo,
		clock:      clock.NewSystem(),
		loanDays:   domain.DefaultLoanDays,
		lateFee:    decimal.Zero,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBorrow opens a loan of a catalog item for borrowerID.
func (s *BorrowService) CreateBorrow(ctx context.Context, borrowerID uuid.UUID, request *domain.CreateBorrowRequest) (*domain.BorrowResponse, error) {
	catalogItemID, err := domain.NormalizeCatalogItemID(request.CatalogItemID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(request.Title)
	author := strings.TrimSpace(request.Author)
	if title == "" || author == "" {
		return nil, customError.WrapInvalidArgument("title and author are required")
	}

	now := s.clock.Now()
	dueAt := utils.CalculateDueDate(now, s.loanDays)
	if request.DueAt != nil {
		if !request.DueAt.After(now) {
			return nil, customError.WrapInvalidArgument("dueAt must be in the future")
		}
		dueAt = request.DueAt.UTC()
	}

	// The unique index is the real guard; this only gives the common case a friendly error.
	active, err := s.borrowRepo.FindActiveByCatalogItem(ctx, catalogItemID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	if active != nil {
		return nil, customError.WrapBookAlreadyBorrowed(catalogItemID)
	}

	borrow := &domain.BorrowRecord{
		ID:            uuid.New(),
		BorrowerID:    borrowerID,
		CatalogItemID: catalogItemID,
		Title:         title,
		Author:        author,
		BorrowedAt:    now,
		DueAt:         dueAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.borrowRepo.Create(ctx, borrow)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	return s.respond(created), nil
}

// ListActive returns every unreturned loan.
func (s *BorrowService) ListActive(ctx context.Context) ([]domain.BorrowResponse, error) {
	borrows, err := s.borrowRepo.ListActive(ctx)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return domain.NewBorrowResponses(borrows, s.clock.Now(), s.lateFee), nil
}

func (s *BorrowService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BorrowResponse, error) {
	borrow, err := s.borrowRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return s.respond(borrow), nil
}

// UpdateOwned applies an owner correction to title, author or dueAt.
func (s *BorrowService) UpdateOwned(ctx context.Context, id, borrowerID uuid.UUID, patch *domain.UpdateBorrowRequest) (*domain.BorrowResponse, error) {
	if patch == nil || patch.Empty() {
		return nil, customError.WrapInvalidArgument("nothing to update")
	}
	for _, field := range []*string{patch.Title, patch.Author} {
		if field != nil {
			*field = strings.TrimSpace(*field)
			if *field == "" {
				return nil, customError.WrapInvalidArgument("title and author must not be blank")
			}
		}
	}
	if patch.DueAt != nil {
		due := patch.DueAt.UTC()
		patch.DueAt = &due
	}

	updated, err := s.borrowRepo.UpdateOwned(ctx, id, borrowerID, patch, s.clock.Now())
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return s.respond(updated), nil
}

// DeleteOwned removes a record owned by borrowerID, returned or not.
func (s *BorrowService) DeleteOwned(ctx context.Context, id, borrowerID uuid.UUID) error {
	if err := s.borrowRepo.DeleteOwned(ctx, id, borrowerID); err != nil {
		return wrapRepoError(err)
	}
	return nil
}

// ReturnBorrow closes an active loan owned by borrowerID and composes an
// availability notice for everyone who wishlisted the item.
func (s *BorrowService) ReturnBorrow(ctx context.Context, id, borrowerID uuid.UUID) (*domain.ReturnBorrowResponse, error) {
	now := s.clock.Now()

	returned, interested, err := s.borrowRepo.MarkReturned(ctx, id, borrowerID, now)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	notifications := make([]domain.NotificationCandidate, 0, len(interested))
	for _, interest := range interested {
		notifications = append(notifications, domain.NewAvailableNotification(interest, returned))
	}

	return &domain.ReturnBorrowResponse{
		Borrow:        domain.NewBorrowResponse(returned, now, s.lateFee),
		Notifications: notifications,
	}, nil
}

// ListByBorrower returns a user's loan history, active and returned.
func (s *BorrowService) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]domain.BorrowResponse, error) {
	borrows, err := s.borrowRepo.ListByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return domain.NewBorrowResponses(borrows, s.clock.Now(), s.lateFee), nil
}

// ListByCatalogItem returns the loan history of one catalog item.
func (s *BorrowService) ListByCatalogItem(ctx context.Context, rawCatalogItemID string) ([]domain.BorrowResponse, error) {
	catalogItemID, err := domain.NormalizeCatalogItemID(rawCatalogItemID)
	if err != nil {
		return nil, err
	}

	borrows, err := s.borrowRepo.ListByCatalogItem(ctx, catalogItemID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return domain.NewBorrowResponses(borrows, s.clock.Now(), s.lateFee), nil
}

// IsAvailable reports whether no active loan exists for the item.
func (s *BorrowService) IsAvailable(ctx context.Context, rawCatalogItemID string) (bool, error) {
	catalogItemID, err := domain.NormalizeCatalogItemID(rawCatalogItemID)
	if err != nil {
		return false, err
	}

	active, err := s.borrowRepo.FindActiveByCatalogItem(ctx, catalogItemID)
	if err != nil {
		return false, wrapRepoError(err)
	}
	return active == nil, nil
}

// AvailableItems reports availability for many items in one query.
func (s *BorrowService) AvailableItems(ctx context.Context, catalogItemIDs []string) (map[string]bool, error) {
	active, err := s.borrowRepo.ActiveCatalogItems(ctx, catalogItemIDs)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	available := make(map[string]bool, len(catalogItemIDs))
	for _, id := range catalogItemIDs {
		available[id] = !active[id]
	}
	return available, nil
}

func (s *BorrowService) respond(b *domain.BorrowRecord) *domain.BorrowResponse {
	resp := domain.NewBorrowResponse(b, s.clock.Now(), s.lateFee)
	return &resp
}

// wrapRepoError keeps business errors as they are and hides anything else
// behind a database error.
func wrapRepoError(err error) error {
	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return customError.WrapDatabaseError(err)
}
