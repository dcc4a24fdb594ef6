package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/shelfmark/internal/domain"
)

type MockBorrowRepository struct {
	mock.Mock
}

func (m *MockBorrowRepository) Create(ctx context.Context, borrow *domain.BorrowRecord) (*domain.BorrowRecord, error) {
	args := m.Called(ctx, borrow)
	if fn, ok := args.Get(0).(func(*domain.BorrowRecord) *domain.BorrowRecord); ok {
		return fn(borrow), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BorrowRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRepository) FindActiveByCatalogItem(ctx context.Context, catalogItemID string) (*domain.BorrowRecord, error) {
	args := m.Called(ctx, catalogItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRepository) ActiveCatalogItems(ctx context.Context, catalogItemIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, catalogItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockBorrowRepository) ListActive(ctx context.Context) ([]*domain.BorrowRecord, error) {
	args := m.Called(ctx)
	return borrowList(args)
}

func (m *MockBorrowRepository) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*domain.BorrowRecord, error) {
	args := m.Called(ctx, borrowerID)
	return borrowList(args)
}

func (m *MockBorrowRepository) ListByCatalogItem(ctx context.Context, catalogItemID string) ([]*domain.BorrowRecord, error) {
	args := m.Called(ctx, catalogItemID)
	return borrowList(args)
}

func (m *MockBorrowRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.BorrowRecord, error) {
	args := m.Called(ctx, now)
	return borrowList(args)
}

func (m *MockBorrowRepository) UpdateOwned(ctx context.Context, id, borrowerID uuid.UUID, patch *domain.UpdateBorrowRequest, now time.Time) (*domain.BorrowRecord, error) {
	args := m.Called(ctx, id, borrowerID, patch, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRepository) MarkReturned(ctx context.Context, id, borrowerID uuid.UUID, now time.Time) (*domain.BorrowRecord, []domain.WishlistInterest, error) {
	args := m.Called(ctx, id, borrowerID, now)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	interested, _ := args.Get(1).([]domain.WishlistInterest)
	return args.Get(0).(*domain.BorrowRecord), interested, args.Error(2)
}

func (m *MockBorrowRepository) DeleteOwned(ctx context.Context, id, borrowerID uuid.UUID) error {
	args := m.Called(ctx, id, borrowerID)
	return args.Error(0)
}

func borrowList(args mock.Arguments) ([]*domain.BorrowRecord, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BorrowRecord), args.Error(1)
}

type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) Create(ctx context.Context, entry *domain.WishlistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WishlistEntry), args.Error(1)
}

func (m *MockWishlistRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByCatalogItem(ctx context.Context, catalogItemID string) ([]*domain.Review, error) {
	args := m.Called(ctx, catalogItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, patch *domain.UpdateReviewRequest, now time.Time) (*domain.Review, error) {
	args := m.Called(ctx, id, userID, patch, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
