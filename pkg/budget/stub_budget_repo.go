package budget

import (
	"context"
	"sort"
)

type StubBudgetRepo struct {
	nextId int
	data   map[int]Budget
	Err    error
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[int]Budget{}}
}

func (s *StubBudgetRepo) Store(ctx context.Context, entry Entry) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.nextId++
	s.data[s.nextId] = Budget{Id: s.nextId, Entry: entry}
	return s.nextId, nil
}

func (s *StubBudgetRepo) GetAll(ctx context.Context, month string) ([]Budget, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	budgets := make([]Budget, 0, len(s.data))
	for _, budget := range s.data {
		if month == "" || budget.Month == month {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		if budgets[i].Month == budgets[j].Month {
			return budgets[i].Id > budgets[j].Id
		}
		return budgets[i].Month > budgets[j].Month
	})
	return budgets, nil
}

func (s *StubBudgetRepo) GetById(ctx context.Context, id int) (Budget, bool, error) {
	if s.Err != nil {
		return Budget{}, false, s.Err
	}
	budget, ok := s.data[id]
	return budget, ok, nil
}

func (s *StubBudgetRepo) Update(ctx context.Context, id int, entry Entry) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	s.data[id] = Budget{Id: id, Entry: entry}
	return true, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, id int) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]Budget{}
	s.Err = nil
}
