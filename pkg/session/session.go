package session

import (
	"context"
	"sync"

	"github.com/pennywise/pennywise/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

const HeaderName = "X-Session-Id"

// Context is the per-client state carried into entry forms.
type Context struct {
	Id         string
	LastPerson string
}

type contextKey string

const sessionKey contextKey = "session"

func WithSession(ctx context.Context, s Context) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// Current returns the session attached to ctx, if any.
func Current(ctx context.Context) (Context, bool) {
	s, ok := ctx.Value(sessionKey).(Context)
	return s, ok
}

// Store keeps the last person used per session id. Unknown sessions start
// with the configured default person.
type Store struct {
	mu            sync.RWMutex
	lastPerson    map[string]string
	defaultPerson string
}

func NewStore(defaultPerson string) *Store {
	return &Store{lastPerson: make(map[string]string), defaultPerson: defaultPerson}
}

func (s *Store) Get(id string) Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	person, ok := s.lastPerson[id]
	if !ok {
		person = s.defaultPerson
	}
	return Context{Id: id, LastPerson: person}
}

func (s *Store) Remember(id string, person string) {
	if id == "" || person == "" {
		return
	}
	s.mu.Lock()
	s.lastPerson[id] = person
	s.mu.Unlock()
}

// Subscribe records the person of every ledger entry added within a session.
func (s *Store) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.LedgerEntryAddedType,
		func(e event_bus.EventT[event_bus.LedgerEntryAdded]) error {
			current, ok := Current(e.Context())
			if !ok {
				log.Tracef("%s %d added outside of a session", e.Data.Kind, e.Data.Id)
				return nil
			}
			s.Remember(current.Id, e.Data.Person)
			return nil
		})
}
