// Package editor implements the fetch-edit-update flow as two explicit phases:
// Load returns a Draft of a stored record, Commit writes it back only while the
// draft still belongs to the record currently being edited.
package editor

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("record not found")
var ErrStaleDraft = errors.New("draft does not belong to the requested record, load it again")

// Store is the slice of a repository the editor needs.
type Store[T any] interface {
	Get(ctx context.Context, id int) (T, bool, error)
	Update(ctx context.Context, id int, fields T) (bool, error)
}

// Draft is an editable copy of the mutable fields of record Id.
type Draft[T any] struct {
	Id     int
	Fields T
}

type Editor[T any] struct {
	store Store[T]
}

func New[T any](store Store[T]) *Editor[T] {
	return &Editor[T]{store: store}
}

func (e *Editor[T]) Load(ctx context.Context, id int) (Draft[T], error) {
	fields, found, err := e.store.Get(ctx, id)
	if err != nil {
		return Draft[T]{}, err
	}
	if !found {
		return Draft[T]{}, ErrNotFound
	}
	return Draft[T]{Id: id, Fields: fields}, nil
}

// Commit overwrites record requestedId with the draft's fields. A draft loaded
// for another id is rejected with ErrStaleDraft and nothing is written.
func (e *Editor[T]) Commit(ctx context.Context, requestedId int, draft Draft[T]) error {
	if draft.Id != requestedId {
		log.Debugf("rejecting stale draft %d for requested record %d", draft.Id, requestedId)
		return fmt.Errorf("%w (draft %d, requested %d)", ErrStaleDraft, draft.Id, requestedId)
	}
	updated, err := e.store.Update(ctx, requestedId, draft.Fields)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}
