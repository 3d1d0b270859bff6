package session

import (
	"net/http"

	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/rest"
	log "github.com/sirupsen/logrus"
)

type EntryDefaultsDTO struct {
	SessionId         string   `json:"sessionId"`
	LastPerson        string   `json:"lastPerson"`
	Persons           []string `json:"persons"`
	ExpenseCategories []string `json:"expenseCategories"`
	RevenueSources    []string `json:"revenueSources"`
}

type Handler struct {
	entry config.Entry
}

func NewHandler(entry config.Entry) *Handler {
	return &Handler{entry: entry}
}

// GetEntryDefaults godoc
// @Summary Entry form defaults
// @Description Known persons, category and source suggestions, and the last person used in this session
// @Tags Session
// @Produce json
// @Success 200 {object} EntryDefaultsDTO
// @Router /api/session [get]
func (h *Handler) GetEntryDefaults(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting entry defaults")
	current, ok := Current(r.Context())
	if !ok {
		current = Context{LastPerson: h.entry.DefaultPerson}
	}
	rest.WriteJSON(w, http.StatusOK, EntryDefaultsDTO{
		SessionId:         current.Id,
		LastPerson:        current.LastPerson,
		Persons:           h.entry.Persons,
		ExpenseCategories: h.entry.ExpenseCategories,
		RevenueSources:    h.entry.RevenueSources,
	})
}
