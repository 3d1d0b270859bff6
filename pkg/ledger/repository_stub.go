package ledger

import (
	"context"
	"sort"
)

// RepositoryStub is an in-memory Repository for service and handler tests.
type RepositoryStub struct {
	nextId  int
	records map[Kind]map[int]Record
	Err     error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{records: map[Kind]map[int]Record{Expense: {}, Revenue: {}}}
}

func (s *RepositoryStub) Add(ctx context.Context, kind Kind, entry Entry) (int, error) {
	if _, err := kind.table(); err != nil {
		return 0, err
	}
	if s.Err != nil {
		return 0, s.Err
	}
	s.nextId++
	s.records[kind][s.nextId] = Record{Id: s.nextId, Entry: entry}
	return s.nextId, nil
}

func (s *RepositoryStub) List(ctx context.Context, kind Kind, filter Filter) ([]Record, error) {
	if _, err := kind.table(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	records := make([]Record, 0, len(s.records[kind]))
	for _, record := range s.records[kind] {
		if filter.hasRange() && (record.Date.Before(filter.From) || record.Date.After(filter.To)) {
			continue
		}
		if filter.Person != "" && record.Person != filter.Person {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date.Equal(records[j].Date) {
			return records[i].Id > records[j].Id
		}
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

func (s *RepositoryStub) GetById(ctx context.Context, kind Kind, id int) (Record, bool, error) {
	if s.Err != nil {
		return Record{}, false, s.Err
	}
	record, ok := s.records[kind][id]
	return record, ok, nil
}

func (s *RepositoryStub) Update(ctx context.Context, kind Kind, id int, entry Entry) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.records[kind][id]; !ok {
		return false, nil
	}
	s.records[kind][id] = Record{Id: id, Entry: entry}
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, kind Kind, id int) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.records[kind][id]; !ok {
		return false, nil
	}
	delete(s.records[kind], id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.records = map[Kind]map[int]Record{Expense: {}, Revenue: {}}
	s.Err = nil
}
