// Package transfer moves ledger and budget rows in and out as CSV files.
package transfer

import (
	"errors"
	"fmt"
	"strings"
)

type Table string

const (
	Expenses Table = "expenses"
	Revenue  Table = "revenue"
	Budget   Table = "budget"
)

var ErrUnknownTable = errors.New("unknown table")
var ErrMissingColumns = errors.New("missing required columns")

func ParseTable(s string) (Table, error) {
	switch t := Table(strings.ToLower(strings.TrimSpace(s))); t {
	case Expenses, Revenue, Budget:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTable, s)
}

// Header returns the export column names of the table.
func (t Table) Header() []string {
	if t == Budget {
		return []string{"id", "month", "amount", "comments"}
	}
	return []string{"id", "date", "amount", "type", "comments", "person"}
}

func (t Table) requiredColumns() []string {
	if t == Budget {
		return []string{"month", "amount"}
	}
	return []string{"date", "amount", "type"}
}

// RowError describes one rejected data row. Rows are numbered from 1,
// not counting the header.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

type ImportResult struct {
	SuccessCount int
	Errors       []RowError
}
