package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Aggregator computes read-only views over the ledger and budget tables.
type Aggregator interface {
	MonthlySummary(ctx context.Context, year, month int) (Summary, error)
	ExpenseBreakdown(ctx context.Context, year, month int) ([]CategoryTotal, error)
	MonthlySavingsTrend(ctx context.Context) ([]MonthlySavings, error)
}

type AggregatorImpl struct {
	db *pgxpool.Pool
}

func NewAggregator(db *pgxpool.Pool) *AggregatorImpl {
	return &AggregatorImpl{db: db}
}

func (a *AggregatorImpl) MonthlySummary(ctx context.Context, year, month int) (Summary, error) {
	from, next := utils.MonthBounds(year, month)
	summary := Summary{Month: utils.MonthKey(year, month)}

	conn, err := a.db.Acquire(ctx)
	if err != nil {
		err := fmt.Errorf("could not acquire connection: %w", err)
		log.Error(err)
		return Summary{}, err
	}
	defer conn.Release()

	totalQuery := `SELECT COALESCE(SUM(amount), 0) FROM %s WHERE date >= $1 AND date < $2`
	err = conn.QueryRow(ctx, fmt.Sprintf(totalQuery, "revenue"), from, next).Scan(&summary.TotalRevenue)
	if err != nil {
		err := fmt.Errorf("could not sum revenue for %s: %w", summary.Month, err)
		log.Error(err)
		return Summary{}, err
	}
	err = conn.QueryRow(ctx, fmt.Sprintf(totalQuery, "expenses"), from, next).Scan(&summary.TotalExpense)
	if err != nil {
		err := fmt.Errorf("could not sum expenses for %s: %w", summary.Month, err)
		log.Error(err)
		return Summary{}, err
	}

	// several budgets for one month: the latest inserted wins
	err = conn.QueryRow(ctx, `SELECT amount FROM budget WHERE month = $1 ORDER BY id DESC LIMIT 1`, summary.Month).
		Scan(&summary.BudgetAmount)
	if errors.Is(err, pgx.ErrNoRows) {
		summary.BudgetAmount = decimal.Zero
	} else if err != nil {
		err := fmt.Errorf("could not read budget for %s: %w", summary.Month, err)
		log.Error(err)
		return Summary{}, err
	}

	return summary, nil
}

func (a *AggregatorImpl) ExpenseBreakdown(ctx context.Context, year, month int) ([]CategoryTotal, error) {
	from, next := utils.MonthBounds(year, month)
	query := `SELECT type, SUM(amount) AS total
				FROM expenses
				WHERE date >= $1 AND date < $2
				GROUP BY type
				ORDER BY total DESC, type ASC`

	rows, err := a.db.Query(ctx, query, from, next)
	if err != nil {
		err := fmt.Errorf("could not query expense breakdown: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	breakdown := make([]CategoryTotal, 0)
	for rows.Next() {
		var total CategoryTotal
		if err := rows.Scan(&total.Category, &total.Total); err != nil {
			err := fmt.Errorf("could not scan expense breakdown: %w", err)
			log.Error(err)
			return nil, err
		}
		breakdown = append(breakdown, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense breakdown: %w", err)
	}
	return breakdown, nil
}

func (a *AggregatorImpl) MonthlySavingsTrend(ctx context.Context) ([]MonthlySavings, error) {
	query := `WITH rev AS (
					SELECT TO_CHAR(date, 'YYYY-MM') AS month, SUM(amount) AS total FROM revenue GROUP BY 1
				), exp AS (
					SELECT TO_CHAR(date, 'YYYY-MM') AS month, SUM(amount) AS total FROM expenses GROUP BY 1
				)
				SELECT COALESCE(rev.month, exp.month) AS month,
					COALESCE(rev.total, 0),
					COALESCE(exp.total, 0)
				FROM rev FULL OUTER JOIN exp ON rev.month = exp.month
				ORDER BY 1`

	rows, err := a.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query savings trend: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	trend := make([]MonthlySavings, 0)
	for rows.Next() {
		var m MonthlySavings
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Expenses); err != nil {
			err := fmt.Errorf("could not scan savings trend: %w", err)
			log.Error(err)
			return nil, err
		}
		m.Savings = m.Revenue.Sub(m.Expenses)
		trend = append(trend, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings trend: %w", err)
	}
	return trend, nil
}
