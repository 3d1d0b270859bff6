package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/event_bus"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/budget"
	"github.com/pennywise/pennywise/pkg/ledger"
	"github.com/pennywise/pennywise/pkg/report"
	"github.com/pennywise/pennywise/pkg/session"
	"github.com/pennywise/pennywise/pkg/sheets"
	"github.com/pennywise/pennywise/pkg/transfer"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	Sessions       *session.Store
	SessionHandler *session.Handler

	LedgerRepo     ledger.Repository
	LedgerService  *ledger.ServiceImpl
	ExpenseHandler *ledger.Handler
	RevenueHandler *ledger.Handler

	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	Aggregator    *report.AggregatorImpl
	ReportService *report.ServiceImpl
	ReportHandler *report.Handler

	TransferService *transfer.ServiceImpl
	TransferHandler *transfer.Handler

	SheetsExporter *sheets.ExporterImpl
	SheetsHandler  *sheets.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.Sessions = session.NewStore(cfg.Entry.DefaultPerson)
	deps.Sessions.Subscribe(deps.EventBus)
	deps.SessionHandler = session.NewHandler(cfg.Entry)

	deps.LedgerRepo = ledger.NewRepository(db)
	deps.LedgerService = ledger.NewService(deps.LedgerRepo, deps.EventBus)
	deps.ExpenseHandler = ledger.NewHandler(deps.LedgerService, ledger.Expense, deps.Clock)
	deps.RevenueHandler = ledger.NewHandler(deps.LedgerService, ledger.Revenue, deps.Clock)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetServiceImpl(deps.BudgetRepo)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.Aggregator = report.NewAggregator(db)
	deps.ReportService = report.NewService(deps.Aggregator)
	deps.ReportHandler = report.NewHandler(deps.ReportService, report.NewCsvRenderer(), deps.Clock)

	deps.TransferService = transfer.NewService(deps.LedgerService, deps.BudgetService, cfg.Entry.DefaultPerson, deps.Clock)
	deps.TransferHandler = transfer.NewHandler(deps.TransferService)

	var writer sheets.Writer
	if cfg.Sheets.Enabled() {
		client, err := sheets.NewClient(ctx, cfg.Sheets)
		if err != nil {
			log.Warnf("Google Sheets export disabled: %v", err)
		} else {
			writer = client
		}
	}
	deps.SheetsExporter = sheets.NewExporter(deps.TransferService, writer)
	deps.SheetsHandler = sheets.NewHandler(deps.SheetsExporter)

	return deps
}
