package report

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidPeriod = errors.New("year and month do not form a valid month")

// Summary holds the totals of one calendar month. Missing data is zero.
type Summary struct {
	Month        string
	TotalRevenue decimal.Decimal
	TotalExpense decimal.Decimal
	BudgetAmount decimal.Decimal
}

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type MonthlySavings struct {
	Month    string
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Savings  decimal.Decimal
}

// KPIs are derived from a Summary. ExpenseRatio is the share of the budget
// spent and is nil when there is no budget for the month.
type KPIs struct {
	NetSavings      decimal.Decimal
	RemainingBudget decimal.Decimal
	ExpenseRatio    *decimal.Decimal
}

func ComputeKPIs(s Summary) KPIs {
	kpis := KPIs{
		NetSavings:      s.TotalRevenue.Sub(s.TotalExpense),
		RemainingBudget: s.BudgetAmount.Sub(s.TotalExpense),
	}
	if s.BudgetAmount.IsPositive() {
		ratio := s.TotalExpense.Div(s.BudgetAmount).Round(4)
		kpis.ExpenseRatio = &ratio
	}
	return kpis
}

// Dashboard is everything the home view shows for one month. Available is
// false when the store could not be reached and every part was zeroed.
type Dashboard struct {
	Available bool
	Summary   Summary
	KPIs      KPIs
	Breakdown []CategoryTotal
	Trend     []MonthlySavings
}
