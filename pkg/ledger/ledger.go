package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects one of the two ledger tables. Both share the same row shape.
type Kind string

const (
	Expense Kind = "expense"
	Revenue Kind = "revenue"
)

var ErrUnknownKind = errors.New("unknown ledger kind")

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrMissingDate   = errors.New("date is required")
	ErrMissingType   = errors.New("type is required")
	ErrInvalidRange  = errors.New("from date is after to date")
)

// Entry holds the mutable fields of an expense or revenue row.
type Entry struct {
	Date     time.Time
	Amount   decimal.Decimal
	Type     string
	Comments string
	Person   string
}

type Record struct {
	Id int
	Entry
}

// Filter narrows List. The date range applies only when both bounds are set;
// both bounds are inclusive.
type Filter struct {
	From   time.Time
	To     time.Time
	Person string
}

func (f Filter) hasRange() bool {
	return !f.From.IsZero() && !f.To.IsZero()
}

func (k Kind) table() (string, error) {
	switch k {
	case Expense:
		return "expenses", nil
	case Revenue:
		return "revenue", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// ValidateEntry applies the entry form rules. The repository itself stores
// entries without calling it.
func ValidateEntry(e Entry) error {
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Type) == "" {
		return ErrMissingType
	}
	return nil
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrMissingDate) || errors.Is(err, ErrMissingType) ||
		errors.Is(err, ErrInvalidRange)
}
