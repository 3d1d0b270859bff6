package app

import (
	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/pkg/ledger"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Expenses and revenue
	for path, handler := range map[string]*ledger.Handler{
		"/api/expense": deps.ExpenseHandler,
		"/api/revenue": deps.RevenueHandler,
	} {
		r.HandleFunc(path, handler.List).Methods("GET")
		r.HandleFunc(path, handler.Create).Methods("POST")
		r.HandleFunc(path+"/{id:[0-9]+}", handler.Get).Methods("GET")
		r.HandleFunc(path+"/{id:[0-9]+}", handler.Update).Methods("PUT")
		r.HandleFunc(path+"/{id:[0-9]+}", handler.Delete).Methods("DELETE")
	}

	// Budget
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Register).Methods("POST")
	r.HandleFunc("/api/budget/{id:[0-9]+}", deps.BudgetHandler.Get).Methods("GET")
	r.HandleFunc("/api/budget/{id:[0-9]+}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id:[0-9]+}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Reports
	r.HandleFunc("/api/report/summary", deps.ReportHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/report/breakdown", deps.ReportHandler.GetBreakdown).Methods("GET")
	r.HandleFunc("/api/report/trend", deps.ReportHandler.GetTrend).Methods("GET")
	r.HandleFunc("/api/dashboard", deps.ReportHandler.GetDashboard).Methods("GET")

	// Import / export
	r.HandleFunc("/api/import/{table}", deps.TransferHandler.Import).Methods("POST")
	r.HandleFunc("/api/export/{table}", deps.TransferHandler.Export).Methods("GET")
	r.HandleFunc("/api/export/{table}/sheets", deps.SheetsHandler.Export).Methods("POST")

	// Entry session
	r.HandleFunc("/api/session", deps.SessionHandler.GetEntryDefaults).Methods("GET")
}
