package budget

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/pkg/editor"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var budgetRepoStub = NewStubBudgetRepo()

var service BudgetService

func setup(t *testing.T) func() {
	service = NewBudgetServiceImpl(budgetRepoStub)
	return func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
	}
}

func TestBudgetServiceImpl_Create(t *testing.T) {
	t.Run("should create a valid budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Entry{Month: "2024-03", Amount: decimal.NewFromInt(2000)})

		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		budgets, _ := service.GetAll(ctx, "")
		assert.Len(t, budgets, 1)
	})

	t.Run("should reject a malformed month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Entry{Month: "March", Amount: decimal.NewFromInt(2000)})

		assert.ErrorIs(t, err, ErrInvalidMonth)
	})
}

func TestBudgetServiceImpl_GetAll(t *testing.T) {
	t.Run("should reject a malformed month filter", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.GetAll(ctx, "2024/03")

		assert.ErrorIs(t, err, ErrInvalidMonth)
	})
}

func TestBudgetServiceImpl_Commit(t *testing.T) {
	t.Run("should update through a loaded draft", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		created, _ := service.Create(ctx, Entry{Month: "2024-03", Amount: decimal.NewFromInt(2000)})

		draft, err := service.Load(ctx, created.Id)
		require.NoError(t, err)
		draft.Fields.Amount = decimal.NewFromInt(2500)
		_, err = service.Commit(ctx, created.Id, draft)

		require.NoError(t, err)
		stored, _, _ := budgetRepoStub.GetById(ctx, created.Id)
		assert.True(t, decimal.NewFromInt(2500).Equal(stored.Amount))
	})

	t.Run("should refuse a stale draft", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		first, _ := service.Create(ctx, Entry{Month: "2024-03", Amount: decimal.NewFromInt(2000)})
		second, _ := service.Create(ctx, Entry{Month: "2024-04", Amount: decimal.NewFromInt(2100)})
		draft, _ := service.Load(ctx, first.Id)

		_, err := service.Commit(ctx, second.Id, draft)

		assert.ErrorIs(t, err, editor.ErrStaleDraft)
	})

	t.Run("should report a deleted record as not found", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		created, _ := service.Create(ctx, Entry{Month: "2024-03", Amount: decimal.NewFromInt(2000)})
		draft, _ := service.Load(ctx, created.Id)
		require.NoError(t, service.Delete(ctx, created.Id))

		_, err := service.Commit(ctx, created.Id, draft)

		assert.ErrorIs(t, err, editor.ErrNotFound)
	})
}

func TestBudgetHandler(t *testing.T) {
	teardown := setup(t)
	defer teardown()
	handler := NewBudgetHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/budget", handler.GetAll).Methods("GET")
	router.HandleFunc("/api/budget", handler.Register).Methods("POST")
	router.HandleFunc("/api/budget/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/api/budget/{id}", handler.Update).Methods("PUT")
	router.HandleFunc("/api/budget/{id}", handler.Delete).Methods("DELETE")

	serve := func(method, target, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
		return w
	}

	created := serve("POST", "/api/budget", `{"month":"2024-03","amount":"2000","comments":"base"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	assert.JSONEq(t, `{"id":1,"month":"2024-03","amount":"2000","comments":"base"}`, created.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve("POST", "/api/budget", `{"month":"2024-3","amount":"2000"}`).Code)
	assert.Equal(t, http.StatusOK, serve("GET", "/api/budget/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve("GET", "/api/budget/2", "").Code)
	assert.Equal(t, http.StatusConflict, serve("PUT", "/api/budget/1", `{"id":5,"month":"2024-03","amount":"1"}`).Code)
	assert.Equal(t, http.StatusOK, serve("PUT", "/api/budget/1", `{"id":1,"month":"2024-03","amount":"2100"}`).Code)
	assert.Equal(t, http.StatusNoContent, serve("DELETE", "/api/budget/1", "").Code)
	assert.Equal(t, http.StatusNoContent, serve("DELETE", "/api/budget/1", "").Code)

	list := serve("GET", "/api/budget", "")
	assert.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, `[]`, list.Body.String())
}
