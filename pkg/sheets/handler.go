package sheets

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/database"
	"github.com/pennywise/pennywise/internal/rest"
	"github.com/pennywise/pennywise/pkg/transfer"
)

type ResultDTO struct {
	Sheet string `json:"sheet"`
	Rows  int    `json:"rows"`
}

type Handler struct {
	exporter Exporter
}

func NewHandler(exporter Exporter) *Handler {
	return &Handler{exporter: exporter}
}

// Export godoc
// @Summary Push a table to Google Sheets
// @Description Replaces the content of the sheet named after the table, header row included.
// @Tags Transfer
// @Produce json
// @Param table path string true "expenses, revenue or budget"
// @Success 200 {object} ResultDTO
// @Failure 404 {object} rest.ErrorResponse "Unknown table"
// @Failure 501 {object} rest.ErrorResponse "Sheets export not configured"
// @Router /api/export/{table}/sheets [post]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	table, err := transfer.ParseTable(mux.Vars(r)["table"])
	if err != nil {
		rest.WriteError(w, http.StatusNotFound, "Unknown table", err.Error())
		return
	}

	result, err := h.exporter.Export(r.Context(), table)
	switch {
	case err == nil:
		rest.WriteJSON(w, http.StatusOK, ResultDTO{Sheet: result.Sheet, Rows: result.Rows})
	case errors.Is(err, ErrDisabled):
		rest.WriteError(w, http.StatusNotImplemented, "Google Sheets export is not configured", "")
	case database.IsUnavailable(err):
		rest.WriteError(w, http.StatusServiceUnavailable, "Database unavailable", "")
	default:
		rest.WriteError(w, http.StatusBadGateway, "Google Sheets export failed", err.Error())
	}
}
