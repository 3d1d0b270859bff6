package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("should start unknown sessions with the default person", func(t *testing.T) {
		store := NewStore("Yateesh")

		assert.Equal(t, Context{Id: "abc", LastPerson: "Yateesh"}, store.Get("abc"))
	})

	t.Run("should remember the last person per session", func(t *testing.T) {
		store := NewStore("Yateesh")

		store.Remember("a", "Prasanna")
		store.Remember("b", "")

		assert.Equal(t, "Prasanna", store.Get("a").LastPerson)
		assert.Equal(t, "Yateesh", store.Get("b").LastPerson)
	})

	t.Run("should record the person of entries added within a session", func(t *testing.T) {
		// given
		store := NewStore("Yateesh")
		bus := event_bus.NewEventBus()
		store.Subscribe(bus)
		ctx := WithSession(context.Background(), store.Get("s-1"))

		// when
		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.LedgerEntryAddedType, event_bus.LedgerEntryAdded{
			Kind: "expense", Id: 7, Person: "Prasanna",
		}))
		require.NoError(t, err)
		err = bus.Publish(event_bus.NewEvent(context.Background(), event_bus.LedgerEntryAddedType, event_bus.LedgerEntryAdded{
			Kind: "expense", Id: 8, Person: "Someone",
		}))
		require.NoError(t, err)

		// then
		assert.Equal(t, "Prasanna", store.Get("s-1").LastPerson)
	})
}

func TestMiddleware(t *testing.T) {
	store := NewStore("Yateesh")
	var seen Context
	handler := store.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = Current(r.Context())
	}))

	t.Run("should issue a session id when none is sent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		issued := w.Header().Get(HeaderName)
		_, err := uuid.Parse(issued)
		assert.NoError(t, err)
		assert.Equal(t, issued, seen.Id)
		assert.Equal(t, "Yateesh", seen.LastPerson)
	})

	t.Run("should reuse a valid session id", func(t *testing.T) {
		id := uuid.NewString()
		store.Remember(id, "Prasanna")
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req.Header.Set(HeaderName, id)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, id, w.Header().Get(HeaderName))
		assert.Equal(t, Context{Id: id, LastPerson: "Prasanna"}, seen)
	})

	t.Run("should replace a malformed session id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req.Header.Set(HeaderName, "not-a-uuid")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEqual(t, "not-a-uuid", seen.Id)
	})
}

func TestHandler_GetEntryDefaults(t *testing.T) {
	// given
	store := NewStore("Yateesh")
	id := uuid.NewString()
	store.Remember(id, "Prasanna")
	h := NewHandler(config.Entry{
		Persons:           []string{"Yateesh", "Prasanna"},
		DefaultPerson:     "Yateesh",
		ExpenseCategories: []string{"Groceries"},
		RevenueSources:    []string{"Salary"},
	})
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set(HeaderName, id)
	w := httptest.NewRecorder()

	// when
	store.Middleware(http.HandlerFunc(h.GetEntryDefaults)).ServeHTTP(w, req)

	// then
	require.Equal(t, http.StatusOK, w.Code)
	var body EntryDefaultsDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, id, body.SessionId)
	assert.Equal(t, "Prasanna", body.LastPerson)
	assert.Equal(t, []string{"Yateesh", "Prasanna"}, body.Persons)
	assert.Equal(t, []string{"Groceries"}, body.ExpenseCategories)
	assert.Equal(t, []string{"Salary"}, body.RevenueSources)
}
