package report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pennywise/pennywise/internal/database"
	"github.com/pennywise/pennywise/internal/rest"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type SummaryDTO struct {
	Month           string           `json:"month"`
	TotalRevenue    decimal.Decimal  `json:"totalRevenue"`
	TotalExpense    decimal.Decimal  `json:"totalExpense"`
	BudgetAmount    decimal.Decimal  `json:"budgetAmount"`
	NetSavings      decimal.Decimal  `json:"netSavings"`
	RemainingBudget decimal.Decimal  `json:"remainingBudget"`
	ExpenseRatio    *decimal.Decimal `json:"expenseRatio"`
}

type CategoryTotalDTO struct {
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
}

type MonthlySavingsDTO struct {
	Month    string          `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
}

type DashboardDTO struct {
	Available bool                `json:"available"`
	Summary   SummaryDTO          `json:"summary"`
	Breakdown []CategoryTotalDTO  `json:"breakdown"`
	Trend     []MonthlySavingsDTO `json:"trend"`
}

type Handler struct {
	service  Service
	renderer Renderer
	clock    utils.Clock
}

func NewHandler(service Service, renderer Renderer, clock utils.Clock) *Handler {
	return &Handler{service: service, renderer: renderer, clock: clock}
}

// GetSummary godoc
// @Summary Monthly summary
// @Description Revenue, expense and budget totals of a month with derived KPIs. Defaults to the current month.
// @Tags Report
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} SummaryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/report/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.period(w, r)
	if !ok {
		return
	}
	summary, kpis, err := h.service.Summary(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toSummaryDTO(summary, kpis))
}

// GetBreakdown godoc
// @Summary Expense breakdown
// @Description Expense totals per type for a month, largest first. Send Accept: text/csv for a CSV rendering.
// @Tags Report
// @Produce json
// @Produce text/csv
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {array} CategoryTotalDTO
// @Router /api/report/breakdown [get]
func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.period(w, r)
	if !ok {
		return
	}
	breakdown, err := h.service.Breakdown(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderBreakdown(breakdown)
		if err != nil {
			rest.WriteError(w, http.StatusInternalServerError, "Could not render csv", err.Error())
			return
		}
		writeCsvResponse(w, csv)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toBreakdownDTO(breakdown))
}

// GetTrend godoc
// @Summary Savings trend
// @Description Revenue, expenses and savings for every month with data, oldest first.
// @Tags Report
// @Produce json
// @Produce text/csv
// @Success 200 {array} MonthlySavingsDTO
// @Router /api/report/trend [get]
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.service.Trend(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderTrend(trend)
		if err != nil {
			rest.WriteError(w, http.StatusInternalServerError, "Could not render csv", err.Error())
			return
		}
		writeCsvResponse(w, csv)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toTrendDTO(trend))
}

// GetDashboard godoc
// @Summary Dashboard
// @Description Summary, KPIs, breakdown and trend in one response. When the database is unreachable all values are zero and available is false.
// @Tags Report
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} DashboardDTO
// @Router /api/dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.period(w, r)
	if !ok {
		return
	}
	log.Debugf("Building dashboard for %s", utils.MonthKey(year, month))
	dashboard, err := h.service.Dashboard(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, DashboardDTO{
		Available: dashboard.Available,
		Summary:   toSummaryDTO(dashboard.Summary, dashboard.KPIs),
		Breakdown: toBreakdownDTO(dashboard.Breakdown),
		Trend:     toTrendDTO(dashboard.Trend),
	})
}

// period reads year and month from the query, falling back to the current month.
func (h *Handler) period(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	year, month := utils.CurrentMonth(h.clock)
	var err error
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
			return 0, 0, false
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
			return 0, 0, false
		}
	}
	return year, month, true
}

func writeCsvResponse(w http.ResponseWriter, csv string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidPeriod):
		rest.WriteError(w, http.StatusBadRequest, "Invalid period", err.Error())
	case database.IsUnavailable(err):
		rest.WriteError(w, http.StatusServiceUnavailable, "Database unavailable", "")
	default:
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

func toSummaryDTO(summary Summary, kpis KPIs) SummaryDTO {
	return SummaryDTO{
		Month:           summary.Month,
		TotalRevenue:    summary.TotalRevenue,
		TotalExpense:    summary.TotalExpense,
		BudgetAmount:    summary.BudgetAmount,
		NetSavings:      kpis.NetSavings,
		RemainingBudget: kpis.RemainingBudget,
		ExpenseRatio:    kpis.ExpenseRatio,
	}
}

func toBreakdownDTO(breakdown []CategoryTotal) []CategoryTotalDTO {
	dtos := make([]CategoryTotalDTO, 0, len(breakdown))
	for _, total := range breakdown {
		dtos = append(dtos, CategoryTotalDTO{Type: total.Category, Total: total.Total})
	}
	return dtos
}

func toTrendDTO(trend []MonthlySavings) []MonthlySavingsDTO {
	dtos := make([]MonthlySavingsDTO, 0, len(trend))
	for _, m := range trend {
		dtos = append(dtos, MonthlySavingsDTO{Month: m.Month, Revenue: m.Revenue, Expenses: m.Expenses, Savings: m.Savings})
	}
	return dtos
}
