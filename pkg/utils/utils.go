package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// CalculateDueDate returns the due date for a loan of loanDays calendar days
// starting at borrowedAt.
func CalculateDueDate(borrowedAt time.Time, loanDays int) time.Time {
	return borrowedAt.AddDate(0, 0, loanDays)
}

// DaysOverdue counts started days past dueAt. Zero when now is not after dueAt.
func DaysOverdue(dueAt, now time.Time) int {
	if !now.After(dueAt) {
		return 0
	}
	late := now.Sub(dueAt)
	days := int(late / day)
	if late%day != 0 {
		days++
	}
	return days
}

// CalculateLateFee returns feePerDay * days, rounded to 2 decimal places.
func CalculateLateFee(feePerDay decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return feePerDay.Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// IsDateOverdue checks if dueAt lies before now
func IsDateOverdue(dueAt, now time.Time) bool {
	return now.After(dueAt)
}
