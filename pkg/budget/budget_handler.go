package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/database"
	"github.com/pennywise/pennywise/internal/rest"
	"github.com/pennywise/pennywise/pkg/editor"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	Id       int             `json:"id"`
	Month    string          `json:"month"`
	Amount   decimal.Decimal `json:"amount"`
	Comments string          `json:"comments"`
}

type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

// Register godoc
// @Summary Add a monthly budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body BudgetDTO true "Budget"
// @Success 201 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budget [post]
func (handler *BudgetHandler) Register(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new budget")

	var budgetDTO BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&budgetDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	createdBudget, err := handler.budgetService.Create(r.Context(), DTOToEntry(budgetDTO))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, BudgetToDTO(createdBudget))
}

// GetAll godoc
// @Summary List monthly budgets
// @Description Budgets ordered by month, newest first.
// @Tags Budget
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {array} BudgetDTO
// @Router /api/budget [get]
func (handler *BudgetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	budgets, err := handler.budgetService.GetAll(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	budgetsDTO := make([]BudgetDTO, 0, len(budgets))
	for _, budget := range budgets {
		budgetsDTO = append(budgetsDTO, BudgetToDTO(budget))
	}
	rest.WriteJSON(w, http.StatusOK, budgetsDTO)
}

// Get godoc
// @Summary Load a budget for editing
// @Tags Budget
// @Produce json
// @Param id path int true "Budget ID"
// @Success 200 {object} BudgetDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/budget/{id} [get]
func (handler *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	budgetId, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}

	draft, err := handler.budgetService.Load(r.Context(), budgetId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(Budget{Id: draft.Id, Entry: draft.Fields}))
}

// Update godoc
// @Summary Overwrite a budget
// @Description The body id is the id of the loaded draft and must match the path id.
// @Tags Budget
// @Accept json
// @Produce json
// @Param id path int true "Budget ID"
// @Param budget body BudgetDTO true "Budget"
// @Success 200 {object} BudgetDTO
// @Failure 404 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse
// @Router /api/budget/{id} [put]
func (handler *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	budgetId, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}
	var budgetDTO BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&budgetDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	draft := editor.Draft[Entry]{Id: budgetDTO.Id, Fields: DTOToEntry(budgetDTO)}
	updated, err := handler.budgetService.Commit(r.Context(), budgetId, draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(updated))
}

// Delete godoc
// @Summary Delete a budget
// @Tags Budget
// @Param id path int true "Budget ID"
// @Success 204 "No Content"
// @Router /api/budget/{id} [delete]
func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	budgetId, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}

	if err := handler.budgetService.Delete(r.Context(), budgetId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case IsValidationError(err):
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget", err.Error())
	case errors.Is(err, editor.ErrNotFound):
		rest.WriteError(w, http.StatusNotFound, "Budget not found", "")
	case errors.Is(err, editor.ErrStaleDraft):
		rest.WriteError(w, http.StatusConflict, "Stale draft", err.Error())
	case database.IsUnavailable(err):
		rest.WriteError(w, http.StatusServiceUnavailable, "Database unavailable", "")
	default:
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

func BudgetToDTO(budget Budget) BudgetDTO {
	return BudgetDTO{
		Id:       budget.Id,
		Month:    budget.Month,
		Amount:   budget.Amount,
		Comments: budget.Comments,
	}
}

func DTOToEntry(budgetDTO BudgetDTO) Entry {
	return Entry{
		Month:    budgetDTO.Month,
		Amount:   budgetDTO.Amount,
		Comments: budgetDTO.Comments,
	}
}
