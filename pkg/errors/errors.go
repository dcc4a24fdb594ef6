package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBookAlreadyBorrowed = fmt.Errorf("book is currently on loan: %w", ErrConflict)
	ErrWishlistDuplicate   = fmt.Errorf("book already in wishlist: %w", ErrConflict)
	ErrReviewDuplicate     = fmt.Errorf("book already reviewed: %w", ErrConflict)
	ErrEmailTaken          = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrBadCredentials      = errors.New("bad credentials")
)

// Kind is the transport-independent failure class of an error.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindUnauthorized
	KindNotFound
	KindConflict
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidArgument    = "INVALID_ARGUMENT"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeBorrowNotFound     = "BORROW_NOT_FOUND"
	ErrCodeBookAlreadyOnLoan  = "BOOK_ALREADY_ON_LOAN"
	ErrCodeWishlistNotFound   = "WISHLIST_NOT_FOUND"
	ErrCodeWishlistDuplicate  = "WISHLIST_DUPLICATE"
	ErrCodeReviewNotFound     = "REVIEW_NOT_FOUND"
	ErrCodeReviewDuplicate    = "REVIEW_DUPLICATE"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeBadCredentials     = "BAD_CREDENTIALS"
	ErrCodeBookNotFound       = "BOOK_NOT_FOUND"
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrBadCredentials):
		return KindInvalidArgument
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

// CodeOf returns the machine-stable code carried by err, if any.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	switch KindOf(err) {
	case KindInvalidArgument:
		return ErrCodeInvalidArgument
	case KindUnauthorized:
		return ErrCodeUnauthorized
	default:
		return ErrCodeInternal
	}
}

// Wrap common errors with business context
func WrapInvalidArgument(message string) *BusinessError {
	return NewBusinessError(ErrCodeInvalidArgument, message, ErrInvalidArgument)
}

func WrapUnauthorized(message string) *BusinessError {
	return NewBusinessError(ErrCodeUnauthorized, message, ErrUnauthorized)
}

func WrapBorrowNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeBorrowNotFound,
		fmt.Sprintf("Borrow record %s not found", id),
		ErrNotFound,
	)
}

// WrapActiveBorrowNotFound is returned by return when no active loan owned by the caller exists.
func WrapActiveBorrowNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeBorrowNotFound,
		fmt.Sprintf("Active borrow record %s not found", id),
		ErrNotFound,
	)
}

func WrapBookAlreadyBorrowed(catalogItemID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBookAlreadyOnLoan,
		fmt.Sprintf("Book %s is currently on loan", catalogItemID),
		ErrBookAlreadyBorrowed,
	)
}

func WrapWishlistNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeWishlistNotFound,
		fmt.Sprintf("Wishlist item %s not found", id),
		ErrNotFound,
	)
}

func WrapWishlistDuplicate() *BusinessError {
	return NewBusinessError(
		ErrCodeWishlistDuplicate,
		"This book is already in your wishlist",
		ErrWishlistDuplicate,
	)
}

func WrapReviewNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeReviewNotFound,
		fmt.Sprintf("Review %s not found", id),
		ErrNotFound,
	)
}

func WrapReviewDuplicate() *BusinessError {
	return NewBusinessError(
		ErrCodeReviewDuplicate,
		"You have already reviewed this book",
		ErrReviewDuplicate,
	)
}

func WrapEmailTaken() *BusinessError {
	return NewBusinessError(ErrCodeEmailTaken, "Duplicate Email", ErrEmailTaken)
}

func WrapBadCredentials() *BusinessError {
	return NewBusinessError(ErrCodeBadCredentials, "Bad Credentials", ErrBadCredentials)
}

func WrapBookNotFound(catalogItemID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBookNotFound,
		fmt.Sprintf("Book %s not found in catalog", catalogItemID),
		ErrNotFound,
	)
}

func WrapCatalogUnavailable(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCatalogUnavailable,
		"catalog lookup failed",
		err,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}
