package transfer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/budget"
	"github.com/pennywise/pennywise/pkg/ledger"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Import(ctx context.Context, table Table, r io.Reader) (ImportResult, error)
	Export(ctx context.Context, table Table, w io.Writer) error
	// Rows returns the export header followed by every row of the table.
	Rows(ctx context.Context, table Table) ([][]string, error)
	FileName(table Table) string
}

type ServiceImpl struct {
	ledger        ledger.Service
	budgets       budget.BudgetService
	defaultPerson string
	clock         utils.Clock
}

func NewService(ledgerService ledger.Service, budgetService budget.BudgetService, defaultPerson string, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		ledger:        ledgerService,
		budgets:       budgetService,
		defaultPerson: defaultPerson,
		clock:         clock,
	}
}

// Import adds every data row of r to table. Rows are validated and stored
// one at a time; a failing row is reported and the rest still go in. Only an
// unreadable header or missing required columns fail the whole file. A read
// error other than a malformed line stops the import and is returned with the
// rows stored so far.
func (s *ServiceImpl) Import(ctx context.Context, table Table, r io.Reader) (ImportResult, error) {
	if _, err := ParseTable(string(table)); err != nil {
		return ImportResult{}, err
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ImportResult{}, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	if err != nil {
		return ImportResult{}, fmt.Errorf("could not read csv header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	var missing []string
	for _, name := range table.requiredColumns() {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return ImportResult{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	result := ImportResult{Errors: []RowError{}}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		// only malformed lines are row failures, a broken reader ends the import
		var parseErr *csv.ParseError
		if err != nil && !errors.As(err, &parseErr) {
			err := fmt.Errorf("could not read csv row %d: %w", row, err)
			log.Error(err)
			return result, err
		}
		if err == nil {
			err = s.importRow(ctx, table, csvRow{columns: columns, values: record})
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Reason: err.Error()})
			continue
		}
		result.SuccessCount++
	}

	log.Infof("Imported %d rows into %s, skipped %d", result.SuccessCount, table, len(result.Errors))
	return result, nil
}

func (s *ServiceImpl) importRow(ctx context.Context, table Table, row csvRow) error {
	amount, err := decimal.NewFromString(row.get("amount"))
	if err != nil {
		return fmt.Errorf("invalid amount %q", row.get("amount"))
	}

	if table == Budget {
		_, err := s.budgets.Create(ctx, budget.Entry{
			Month:    row.get("month"),
			Amount:   amount,
			Comments: row.get("comments"),
		})
		return err
	}

	date, err := time.Parse(utils.DateLayout, row.get("date"))
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", row.get("date"))
	}
	person := row.get("person")
	if person == "" {
		person = s.defaultPerson
	}
	_, err = s.ledger.Add(ctx, ledgerKind(table), ledger.Entry{
		Date:     date,
		Amount:   amount,
		Type:     row.get("type"),
		Comments: row.get("comments"),
		Person:   person,
	})
	return err
}

func (s *ServiceImpl) Export(ctx context.Context, table Table, w io.Writer) error {
	rows, err := s.Rows(ctx, table)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return err
	}
	return nil
}

func (s *ServiceImpl) Rows(ctx context.Context, table Table) ([][]string, error) {
	if _, err := ParseTable(string(table)); err != nil {
		return nil, err
	}
	rows := [][]string{table.Header()}

	if table == Budget {
		budgets, err := s.budgets.GetAll(ctx, "")
		if err != nil {
			return nil, err
		}
		for _, b := range budgets {
			rows = append(rows, []string{strconv.Itoa(b.Id), b.Month, b.Amount.String(), b.Comments})
		}
		return rows, nil
	}

	records, err := s.ledger.List(ctx, ledgerKind(table), ledger.Filter{})
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Id),
			r.Date.Format(utils.DateLayout),
			r.Amount.String(),
			r.Type,
			r.Comments,
			r.Person,
		})
	}
	return rows, nil
}

// FileName suggests a download name such as expenses_20240318.csv.
func (s *ServiceImpl) FileName(table Table) string {
	return fmt.Sprintf("%s_%s.csv", table, s.clock.Now().Format("20060102"))
}

func ledgerKind(table Table) ledger.Kind {
	if table == Revenue {
		return ledger.Revenue
	}
	return ledger.Expense
}

type csvRow struct {
	columns map[string]int
	values  []string
}

func (r csvRow) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}
