package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Repository gives identical CRUD access to both ledger tables. It performs no
// validation and treats a missing id as an empty result, never as an error.
type Repository interface {
	Add(ctx context.Context, kind Kind, entry Entry) (int, error)
	List(ctx context.Context, kind Kind, filter Filter) ([]Record, error)
	GetById(ctx context.Context, kind Kind, id int) (Record, bool, error)
	Update(ctx context.Context, kind Kind, id int, entry Entry) (bool, error)
	Delete(ctx context.Context, kind Kind, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Add(ctx context.Context, kind Kind, entry Entry) (int, error) {
	table, err := kind.table()
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`INSERT INTO %s (date, amount, type, comments, person)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`, table)

	var id int
	err = r.db.QueryRow(ctx, query,
		entry.Date,
		entry.Amount,
		entry.Type,
		entry.Comments,
		entry.Person,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert %s: %w", kind, err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) List(ctx context.Context, kind Kind, filter Filter) ([]Record, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	var conditions []string
	var args []any
	if filter.hasRange() {
		args = append(args, filter.From, filter.To)
		conditions = append(conditions, fmt.Sprintf("date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}
	if filter.Person != "" {
		args = append(args, filter.Person)
		conditions = append(conditions, fmt.Sprintf("person = $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT id, date, amount, type, comments, person FROM %s", table)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query %s: %w", table, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var record Record
		if err := rows.Scan(
			&record.Id,
			&record.Date,
			&record.Amount,
			&record.Type,
			&record.Comments,
			&record.Person,
		); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return records, nil
}

func (r *RepositoryImpl) GetById(ctx context.Context, kind Kind, id int) (Record, bool, error) {
	table, err := kind.table()
	if err != nil {
		return Record{}, false, err
	}
	query := fmt.Sprintf("SELECT id, date, amount, type, comments, person FROM %s WHERE id = $1", table)

	var record Record
	err = r.db.QueryRow(ctx, query, id).Scan(
		&record.Id,
		&record.Date,
		&record.Amount,
		&record.Type,
		&record.Comments,
		&record.Person,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debugf("no %s found with id %d", kind, id)
			return Record{}, false, nil
		}
		err := fmt.Errorf("could not get %s %d: %w", kind, id, err)
		log.Error(err)
		return Record{}, false, err
	}
	return record, true, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, kind Kind, id int, entry Entry) (bool, error) {
	table, err := kind.table()
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`UPDATE %s SET
                  date = $1,
                  amount = $2,
                  type = $3,
                  comments = $4,
                  person = $5
              WHERE id = $6`, table)

	result, err := r.db.Exec(ctx, query,
		entry.Date,
		entry.Amount,
		entry.Type,
		entry.Comments,
		entry.Person,
		id,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, kind Kind, id int) (bool, error) {
	table, err := kind.table()
	if err != nil {
		return false, err
	}
	result, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
