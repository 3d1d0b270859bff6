package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/database"
	"github.com/pennywise/pennywise/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ImportResultDTO struct {
	SuccessCount int      `json:"successCount"`
	Errors       []string `json:"errors"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Import godoc
// @Summary Import a CSV file
// @Description The body is a CSV file whose header names the columns. Invalid rows are skipped and reported.
// @Tags Transfer
// @Accept text/csv
// @Produce json
// @Param table path string true "expenses, revenue or budget"
// @Success 200 {object} ImportResultDTO
// @Failure 400 {object} rest.ErrorResponse "Missing required columns"
// @Failure 404 {object} rest.ErrorResponse "Unknown table"
// @Router /api/import/{table} [post]
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	table, ok := pathTable(w, r)
	if !ok {
		return
	}
	log.Debugf("Importing csv into %s", table)

	result, err := h.service.Import(r.Context(), table, r.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ResultToDTO(result))
}

// Export godoc
// @Summary Export a table as CSV
// @Tags Transfer
// @Produce text/csv
// @Param table path string true "expenses, revenue or budget"
// @Success 200 {string} string "CSV file"
// @Failure 404 {object} rest.ErrorResponse "Unknown table"
// @Router /api/export/{table} [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	table, ok := pathTable(w, r)
	if !ok {
		return
	}

	var b bytes.Buffer
	if err := h.service.Export(r.Context(), table, &b); err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.service.FileName(table)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b.Bytes()); err != nil {
		log.Errorf("failed to write export of %s: %v", table, err)
	}
}

func pathTable(w http.ResponseWriter, r *http.Request) (Table, bool) {
	table, err := ParseTable(mux.Vars(r)["table"])
	if err != nil {
		rest.WriteError(w, http.StatusNotFound, "Unknown table", err.Error())
		return "", false
	}
	return table, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownTable):
		rest.WriteError(w, http.StatusNotFound, "Unknown table", err.Error())
	case errors.Is(err, ErrMissingColumns):
		rest.WriteError(w, http.StatusBadRequest, "Invalid csv file", err.Error())
	case database.IsUnavailable(err):
		rest.WriteError(w, http.StatusServiceUnavailable, "Database unavailable", "")
	default:
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

func ResultToDTO(result ImportResult) ImportResultDTO {
	messages := make([]string, 0, len(result.Errors))
	for _, rowErr := range result.Errors {
		messages = append(messages, rowErr.Error())
	}
	return ImportResultDTO{SuccessCount: result.SuccessCount, Errors: messages}
}
