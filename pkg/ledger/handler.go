package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/database"
	"github.com/pennywise/pennywise/internal/rest"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/editor"
	"github.com/pennywise/pennywise/pkg/session"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type RecordDTO struct {
	Id       int             `json:"id"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Comments string          `json:"comments"`
	Person   string          `json:"person"`
}

// Handler serves one ledger kind; the app registers one per table.
type Handler struct {
	service Service
	kind    Kind
	clock   utils.Clock
}

func NewHandler(service Service, kind Kind, clock utils.Clock) *Handler {
	return &Handler{service: service, kind: kind, clock: clock}
}

// List godoc
// @Summary List ledger records
// @Description Records ordered by date, newest first. from and to (YYYY-MM-DD) filter inclusively when both are given.
// @Tags Ledger
// @Produce json
// @Param from query string false "Start date"
// @Param to query string false "End date"
// @Param person query string false "Person"
// @Success 200 {array} RecordDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expense [get]
// @Router /api/revenue [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debugf("Listing %s records", h.kind)
	filter := Filter{Person: r.URL.Query().Get("person")}
	var err error
	if from := r.URL.Query().Get("from"); from != "" {
		if filter.From, err = time.Parse(utils.DateLayout, from); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid from date", "from must be in YYYY-MM-DD format")
			return
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if filter.To, err = time.Parse(utils.DateLayout, to); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid to date", "to must be in YYYY-MM-DD format")
			return
		}
	}

	records, err := h.service.List(r.Context(), h.kind, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]RecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, RecordToDTO(record))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Add a ledger record
// @Description Amount must be positive. An empty date defaults to today, an empty person to the last person used in the session.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param record body RecordDTO true "Record"
// @Success 201 {object} RecordDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expense [post]
// @Router /api/revenue [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debugf("Creating %s record", h.kind)
	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	entry, err := DTOToEntry(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}
	if entry.Date.IsZero() {
		entry.Date = utils.Today(h.clock)
	}
	if entry.Person == "" {
		if current, ok := session.Current(r.Context()); ok {
			entry.Person = current.LastPerson
		}
	}

	record, err := h.service.Add(r.Context(), h.kind, entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, RecordToDTO(record))
}

// Get godoc
// @Summary Load a ledger record for editing
// @Tags Ledger
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} RecordDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expense/{id} [get]
// @Router /api/revenue/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	draft, err := h.service.Load(r.Context(), h.kind, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, RecordToDTO(Record{Id: draft.Id, Entry: draft.Fields}))
}

// Update godoc
// @Summary Overwrite a ledger record
// @Description The body id is the id of the loaded draft and must match the path id.
// @Tags Ledger
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param record body RecordDTO true "Record"
// @Success 200 {object} RecordDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse "Draft belongs to another record"
// @Router /api/expense/{id} [put]
// @Router /api/revenue/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	entry, err := DTOToEntry(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}

	record, err := h.service.Commit(r.Context(), h.kind, id, editor.Draft[Entry]{Id: dto.Id, Fields: entry})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, RecordToDTO(record))
}

// Delete godoc
// @Summary Delete a ledger record
// @Description Deleting a missing record is not an error.
// @Tags Ledger
// @Param id path int true "Record ID"
// @Success 204 "No Content"
// @Router /api/expense/{id} [delete]
// @Router /api/revenue/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), h.kind, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid id", err.Error())
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case IsValidationError(err):
		rest.WriteError(w, http.StatusBadRequest, "Invalid record", err.Error())
	case errors.Is(err, editor.ErrNotFound):
		rest.WriteError(w, http.StatusNotFound, "Record not found", "")
	case errors.Is(err, editor.ErrStaleDraft):
		rest.WriteError(w, http.StatusConflict, "Stale draft", err.Error())
	case database.IsUnavailable(err):
		rest.WriteError(w, http.StatusServiceUnavailable, "Database unavailable", "")
	default:
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

func RecordToDTO(record Record) RecordDTO {
	return RecordDTO{
		Id:       record.Id,
		Date:     record.Date.Format(utils.DateLayout),
		Amount:   record.Amount,
		Type:     record.Type,
		Comments: record.Comments,
		Person:   record.Person,
	}
}

func DTOToEntry(dto RecordDTO) (Entry, error) {
	var date time.Time
	if dto.Date != "" {
		var err error
		date, err = time.Parse(utils.DateLayout, dto.Date)
		if err != nil {
			return Entry{}, err
		}
	}
	return Entry{
		Date:     date,
		Amount:   dto.Amount,
		Type:     dto.Type,
		Comments: dto.Comments,
		Person:   dto.Person,
	}, nil
}
