package ledger

import (
	"context"
	"fmt"

	"github.com/pennywise/pennywise/internal/event_bus"
	"github.com/pennywise/pennywise/pkg/editor"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Add(ctx context.Context, kind Kind, entry Entry) (Record, error)
	List(ctx context.Context, kind Kind, filter Filter) ([]Record, error)
	Load(ctx context.Context, kind Kind, id int) (editor.Draft[Entry], error)
	Commit(ctx context.Context, kind Kind, requestedId int, draft editor.Draft[Entry]) (Record, error)
	Delete(ctx context.Context, kind Kind, id int) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Add(ctx context.Context, kind Kind, entry Entry) (Record, error) {
	if err := ValidateEntry(entry); err != nil {
		return Record{}, err
	}
	id, err := s.repo.Add(ctx, kind, entry)
	if err != nil {
		return Record{}, err
	}

	// The row is already stored; a failing subscriber only loses session bookkeeping.
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.LedgerEntryAddedType, event_bus.LedgerEntryAdded{
		Kind:   string(kind),
		Id:     id,
		Date:   entry.Date,
		Person: entry.Person,
	}))
	if err != nil {
		log.Warnf("failed to publish %s added event: %v", kind, err)
	}

	return Record{Id: id, Entry: entry}, nil
}

func (s *ServiceImpl) List(ctx context.Context, kind Kind, filter Filter) ([]Record, error) {
	if filter.hasRange() && filter.From.After(filter.To) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, filter.From.Format("2006-01-02"), filter.To.Format("2006-01-02"))
	}
	return s.repo.List(ctx, kind, filter)
}

func (s *ServiceImpl) Load(ctx context.Context, kind Kind, id int) (editor.Draft[Entry], error) {
	return s.editorFor(kind).Load(ctx, id)
}

func (s *ServiceImpl) Commit(ctx context.Context, kind Kind, requestedId int, draft editor.Draft[Entry]) (Record, error) {
	if err := ValidateEntry(draft.Fields); err != nil {
		return Record{}, err
	}
	if err := s.editorFor(kind).Commit(ctx, requestedId, draft); err != nil {
		return Record{}, err
	}
	return Record{Id: requestedId, Entry: draft.Fields}, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, kind Kind, id int) error {
	deleted, err := s.repo.Delete(ctx, kind, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Debugf("%s %d not deleted, it does not exist", kind, id)
	}
	return nil
}

func (s *ServiceImpl) editorFor(kind Kind) *editor.Editor[Entry] {
	return editor.New[Entry](kindStore{repo: s.repo, kind: kind})
}

// kindStore adapts one ledger table to editor.Store.
type kindStore struct {
	repo Repository
	kind Kind
}

func (k kindStore) Get(ctx context.Context, id int) (Entry, bool, error) {
	record, found, err := k.repo.GetById(ctx, k.kind, id)
	return record.Entry, found, err
}

func (k kindStore) Update(ctx context.Context, id int, entry Entry) (bool, error) {
	return k.repo.Update(ctx, k.kind, id, entry)
}
