package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/database"
	"github.com/pennywise/pennywise/internal/event_bus"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T, kind Kind) (*mux.Router, *session.Store) {
	stub := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	sessions := session.NewStore("Yateesh")
	sessions.Subscribe(bus)
	clock := &utils.FixedClock{At: time.Date(2024, time.March, 18, 23, 45, 0, 0, time.UTC)}
	handler := NewHandler(NewService(stub, bus), kind, clock)

	router := mux.NewRouter()
	router.Use(sessions.Middleware)
	path := "/api/" + string(kind)
	router.HandleFunc(path, handler.List).Methods("GET")
	router.HandleFunc(path, handler.Create).Methods("POST")
	router.HandleFunc(path+"/{id}", handler.Get).Methods("GET")
	router.HandleFunc(path+"/{id}", handler.Update).Methods("PUT")
	router.HandleFunc(path+"/{id}", handler.Delete).Methods("DELETE")
	return router, sessions
}

func doRequest(router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Create(t *testing.T) {
	t.Run("should create an expense", func(t *testing.T) {
		router, _ := setupHandler(t, Expense)

		w := doRequest(router, "POST", "/api/expense", `{"date":"2024-03-05","amount":"12.5","type":"Groceries","person":"Ann"}`, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		var dto RecordDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
		assert.Equal(t, 1, dto.Id)
		assert.Equal(t, "2024-03-05", dto.Date)
		assert.True(t, decimal.RequireFromString("12.5").Equal(dto.Amount))
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		router, _ := setupHandler(t, Expense)

		w := doRequest(router, "POST", "/api/expense", `{"date":"2024-03-05","amount":"0","type":"Groceries"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject a malformed date", func(t *testing.T) {
		router, _ := setupHandler(t, Revenue)

		w := doRequest(router, "POST", "/api/revenue", `{"date":"05/03/2024","amount":"1","type":"Salary"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should default an empty date to today", func(t *testing.T) {
		router, _ := setupHandler(t, Expense)

		w := doRequest(router, "POST", "/api/expense", `{"amount":"3","type":"Dining Out","person":"Ann"}`, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		var dto RecordDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
		assert.Equal(t, "2024-03-18", dto.Date)
	})

	t.Run("should default the person from the session", func(t *testing.T) {
		router, _ := setupHandler(t, Revenue)

		first := doRequest(router, "POST", "/api/revenue", `{"date":"2024-03-01","amount":"100","type":"Salary","person":"Prasanna"}`, nil)
		require.Equal(t, http.StatusCreated, first.Code)
		sessionId := first.Header().Get(session.HeaderName)

		second := doRequest(router, "POST", "/api/revenue", `{"date":"2024-03-02","amount":"50","type":"Gift"}`,
			map[string]string{session.HeaderName: sessionId})

		require.Equal(t, http.StatusCreated, second.Code)
		var dto RecordDTO
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &dto))
		assert.Equal(t, "Prasanna", dto.Person)
	})
}

func TestHandler_List(t *testing.T) {
	t.Run("should list within the date range", func(t *testing.T) {
		router, _ := setupHandler(t, Expense)
		for _, d := range []string{"2024-01-31", "2024-02-10", "2024-03-01"} {
			w := doRequest(router, "POST", "/api/expense", fmt.Sprintf(`{"date":%q,"amount":"1","type":"Rent"}`, d), nil)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		w := doRequest(router, "GET", "/api/expense?from=2024-02-01&to=2024-02-29", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var dtos []RecordDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dtos))
		require.Len(t, dtos, 1)
		assert.Equal(t, "2024-02-10", dtos[0].Date)
	})

	t.Run("should return an empty array when nothing is stored", func(t *testing.T) {
		router, _ := setupHandler(t, Expense)

		w := doRequest(router, "GET", "/api/expense", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("should reject a bad from date", func(t *testing.T) {
		router, _ := setupHandler(t, Expense)

		w := doRequest(router, "GET", "/api/expense?from=yesterday&to=2024-01-01", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Edit(t *testing.T) {
	t.Run("should load and update a record", func(t *testing.T) {
		router, _ := setupHandler(t, Expense)
		doRequest(router, "POST", "/api/expense", `{"date":"2024-03-05","amount":"10","type":"Transport"}`, nil)

		loaded := doRequest(router, "GET", "/api/expense/1", "", nil)
		require.Equal(t, http.StatusOK, loaded.Code)

		w := doRequest(router, "PUT", "/api/expense/1", `{"id":1,"date":"2024-03-06","amount":"11","type":"Transport","comments":"taxi"}`, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var dto RecordDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
		assert.Equal(t, "taxi", dto.Comments)
		assert.Equal(t, "2024-03-06", dto.Date)
	})

	t.Run("should answer 404 for a missing record", func(t *testing.T) {
		router, _ := setupHandler(t, Expense)

		w := doRequest(router, "GET", "/api/expense/7", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should answer 409 when the draft id differs from the path", func(t *testing.T) {
		router, _ := setupHandler(t, Expense)
		doRequest(router, "POST", "/api/expense", `{"date":"2024-03-05","amount":"10","type":"Transport"}`, nil)
		doRequest(router, "POST", "/api/expense", `{"date":"2024-03-06","amount":"20","type":"Transport"}`, nil)

		w := doRequest(router, "PUT", "/api/expense/2", `{"id":1,"date":"2024-03-05","amount":"99","type":"Transport"}`, nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Run("should answer 204 even for a missing record", func(t *testing.T) {
		router, _ := setupHandler(t, Revenue)

		w := doRequest(router, "DELETE", "/api/revenue/3", "", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestWriteServiceError(t *testing.T) {
	t.Run("should map unavailable store to 503", func(t *testing.T) {
		w := httptest.NewRecorder()

		writeServiceError(w, fmt.Errorf("list: %w", database.ErrUnavailable))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("should map other failures to 500", func(t *testing.T) {
		w := httptest.NewRecorder()

		writeServiceError(w, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
