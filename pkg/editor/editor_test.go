package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Text string
}

type storeStub struct {
	notes map[int]note
	err   error
}

func (s *storeStub) Get(ctx context.Context, id int) (note, bool, error) {
	if s.err != nil {
		return note{}, false, s.err
	}
	n, ok := s.notes[id]
	return n, ok, nil
}

func (s *storeStub) Update(ctx context.Context, id int, fields note) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.notes[id]; !ok {
		return false, nil
	}
	s.notes[id] = fields
	return true, nil
}

func newStore() *storeStub {
	return &storeStub{notes: map[int]note{1: {Text: "first"}, 2: {Text: "second"}}}
}

func TestEditor_Load(t *testing.T) {
	t.Run("should load a draft of an existing record", func(t *testing.T) {
		ed := New[note](newStore())

		draft, err := ed.Load(context.Background(), 2)

		require.NoError(t, err)
		assert.Equal(t, Draft[note]{Id: 2, Fields: note{Text: "second"}}, draft)
	})

	t.Run("should return ErrNotFound for a missing record", func(t *testing.T) {
		ed := New[note](newStore())

		_, err := ed.Load(context.Background(), 42)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should pass store errors through", func(t *testing.T) {
		store := newStore()
		store.err = errors.New("connection reset")
		ed := New[note](store)

		_, err := ed.Load(context.Background(), 1)

		assert.EqualError(t, err, "connection reset")
	})
}

func TestEditor_Commit(t *testing.T) {
	t.Run("should write the draft when it matches the requested record", func(t *testing.T) {
		// given
		store := newStore()
		ed := New[note](store)
		draft, err := ed.Load(context.Background(), 1)
		require.NoError(t, err)
		draft.Fields.Text = "edited"

		// when
		err = ed.Commit(context.Background(), 1, draft)

		// then
		require.NoError(t, err)
		assert.Equal(t, "edited", store.notes[1].Text)
	})

	t.Run("should reject a draft loaded for another record", func(t *testing.T) {
		// given
		store := newStore()
		ed := New[note](store)
		draft, err := ed.Load(context.Background(), 1)
		require.NoError(t, err)
		draft.Fields.Text = "edited"

		// when the requested id changed after loading
		err = ed.Commit(context.Background(), 2, draft)

		// then
		assert.ErrorIs(t, err, ErrStaleDraft)
		assert.Equal(t, "first", store.notes[1].Text)
		assert.Equal(t, "second", store.notes[2].Text)
	})

	t.Run("should report ErrNotFound when the record vanished", func(t *testing.T) {
		// given
		store := newStore()
		ed := New[note](store)
		draft, err := ed.Load(context.Background(), 1)
		require.NoError(t, err)
		delete(store.notes, 1)

		// when
		err = ed.Commit(context.Background(), 1, draft)

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
