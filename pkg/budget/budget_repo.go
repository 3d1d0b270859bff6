package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// BudgetRepo stores monthly budgets. Several rows may share a month; readers
// that need a single amount take the most recently inserted one.
type BudgetRepo interface {
	Store(ctx context.Context, entry Entry) (int, error)
	// GetAll returns budgets newest month first. An empty month returns every row.
	GetAll(ctx context.Context, month string) ([]Budget, error)
	GetById(ctx context.Context, id int) (Budget, bool, error)
	Update(ctx context.Context, id int, entry Entry) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type BudgetRepoImpl struct {
	db *pgxpool.Pool
}

func NewBudgetRepo(db *pgxpool.Pool) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (b *BudgetRepoImpl) Store(ctx context.Context, entry Entry) (int, error) {
	query := `INSERT INTO budget (month, amount, comments) VALUES ($1, $2, $3) RETURNING id`

	var id int
	err := b.db.QueryRow(ctx, query, entry.Month, entry.Amount, entry.Comments).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert budget: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (b *BudgetRepoImpl) GetAll(ctx context.Context, month string) ([]Budget, error) {
	query := `SELECT id, month, amount, comments FROM budget`
	args := []any{}
	if month != "" {
		query += ` WHERE month = $1`
		args = append(args, month)
	}
	query += ` ORDER BY month DESC, id DESC`

	rows, err := b.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	budgets := make([]Budget, 0)
	for rows.Next() {
		var budget Budget
		if err := rows.Scan(&budget.Id, &budget.Month, &budget.Amount, &budget.Comments); err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

func (b *BudgetRepoImpl) GetById(ctx context.Context, id int) (Budget, bool, error) {
	query := `SELECT id, month, amount, comments FROM budget WHERE id = $1`

	var budget Budget
	err := b.db.QueryRow(ctx, query, id).Scan(&budget.Id, &budget.Month, &budget.Amount, &budget.Comments)
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not get budget %d: %w", id, err)
		log.Error(err)
		return Budget{}, false, err
	}
	return budget, true, nil
}

func (b *BudgetRepoImpl) Update(ctx context.Context, id int, entry Entry) (bool, error) {
	query := `UPDATE budget SET month = $1, amount = $2, comments = $3 WHERE id = $4`

	result, err := b.db.Exec(ctx, query, entry.Month, entry.Amount, entry.Comments, id)
	if err != nil {
		err := fmt.Errorf("could not update budget %d: %w", id, err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (b *BudgetRepoImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := b.db.Exec(ctx, `DELETE FROM budget WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete budget %d: %w", id, err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
