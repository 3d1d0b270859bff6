package budget

import (
	"context"
	"fmt"

	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/editor"
	log "github.com/sirupsen/logrus"
)

type BudgetService interface {
	GetAll(ctx context.Context, month string) ([]Budget, error)
	Create(ctx context.Context, entry Entry) (Budget, error)
	Load(ctx context.Context, id int) (editor.Draft[Entry], error)
	Commit(ctx context.Context, requestedId int, draft editor.Draft[Entry]) (Budget, error)
	Delete(ctx context.Context, id int) error
}

type BudgetServiceImpl struct {
	repo   BudgetRepo
	editor *editor.Editor[Entry]
}

func NewBudgetServiceImpl(repo BudgetRepo) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, editor: editor.New[Entry](budgetStore{repo})}
}

func (s *BudgetServiceImpl) GetAll(ctx context.Context, month string) ([]Budget, error) {
	if month != "" {
		if _, _, err := utils.ParseMonthKey(month); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
		}
	}
	return s.repo.GetAll(ctx, month)
}

func (s *BudgetServiceImpl) Create(ctx context.Context, entry Entry) (Budget, error) {
	if err := ValidateEntry(entry); err != nil {
		return Budget{}, err
	}
	id, err := s.repo.Store(ctx, entry)
	if err != nil {
		return Budget{}, err
	}
	log.Debugf("Stored budget %d for %s", id, entry.Month)
	return Budget{Id: id, Entry: entry}, nil
}

func (s *BudgetServiceImpl) Load(ctx context.Context, id int) (editor.Draft[Entry], error) {
	return s.editor.Load(ctx, id)
}

func (s *BudgetServiceImpl) Commit(ctx context.Context, requestedId int, draft editor.Draft[Entry]) (Budget, error) {
	if err := ValidateEntry(draft.Fields); err != nil {
		return Budget{}, err
	}
	if err := s.editor.Commit(ctx, requestedId, draft); err != nil {
		return Budget{}, err
	}
	return Budget{Id: requestedId, Entry: draft.Fields}, nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Debugf("budget %d not deleted, it does not exist", id)
	}
	return nil
}

type budgetStore struct {
	repo BudgetRepo
}

func (b budgetStore) Get(ctx context.Context, id int) (Entry, bool, error) {
	budget, found, err := b.repo.GetById(ctx, id)
	return budget.Entry, found, err
}

func (b budgetStore) Update(ctx context.Context, id int, entry Entry) (bool, error) {
	return b.repo.Update(ctx, id, entry)
}
