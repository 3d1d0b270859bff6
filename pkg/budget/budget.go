package budget

import (
	"errors"
	"fmt"

	"github.com/pennywise/pennywise/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMonth  = errors.New("month must be in YYYY-MM format")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Entry is the mutable part of a monthly budget row. Month is a YYYY-MM key.
type Entry struct {
	Month    string
	Amount   decimal.Decimal
	Comments string
}

type Budget struct {
	Id int
	Entry
}

func ValidateEntry(e Entry) error {
	if _, _, err := utils.ParseMonthKey(e.Month); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, e.Month)
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidMonth) || errors.Is(err, ErrInvalidAmount)
}
