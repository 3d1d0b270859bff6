package report

import (
	"context"
	"fmt"

	"github.com/pennywise/pennywise/internal/database"
	"github.com/pennywise/pennywise/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Summary(ctx context.Context, year, month int) (Summary, KPIs, error)
	Breakdown(ctx context.Context, year, month int) ([]CategoryTotal, error)
	Trend(ctx context.Context) ([]MonthlySavings, error)
	Dashboard(ctx context.Context, year, month int) (Dashboard, error)
}

type ServiceImpl struct {
	aggregator Aggregator
}

func NewService(aggregator Aggregator) *ServiceImpl {
	return &ServiceImpl{aggregator: aggregator}
}

func (s *ServiceImpl) Summary(ctx context.Context, year, month int) (Summary, KPIs, error) {
	if err := checkPeriod(year, month); err != nil {
		return Summary{}, KPIs{}, err
	}
	summary, err := s.aggregator.MonthlySummary(ctx, year, month)
	if err != nil {
		return Summary{}, KPIs{}, err
	}
	return summary, ComputeKPIs(summary), nil
}

func (s *ServiceImpl) Breakdown(ctx context.Context, year, month int) ([]CategoryTotal, error) {
	if err := checkPeriod(year, month); err != nil {
		return nil, err
	}
	return s.aggregator.ExpenseBreakdown(ctx, year, month)
}

func (s *ServiceImpl) Trend(ctx context.Context) ([]MonthlySavings, error) {
	return s.aggregator.MonthlySavingsTrend(ctx)
}

// Dashboard composes all views for one month. An unreachable store yields a
// zeroed dashboard with Available set to false instead of an error.
func (s *ServiceImpl) Dashboard(ctx context.Context, year, month int) (Dashboard, error) {
	if err := checkPeriod(year, month); err != nil {
		return Dashboard{}, err
	}
	key := utils.MonthKey(year, month)

	summary, err := s.aggregator.MonthlySummary(ctx, year, month)
	if err != nil {
		return degrade(key, err)
	}
	breakdown, err := s.aggregator.ExpenseBreakdown(ctx, year, month)
	if err != nil {
		return degrade(key, err)
	}
	trend, err := s.aggregator.MonthlySavingsTrend(ctx)
	if err != nil {
		return degrade(key, err)
	}

	return Dashboard{
		Available: true,
		Summary:   summary,
		KPIs:      ComputeKPIs(summary),
		Breakdown: breakdown,
		Trend:     trend,
	}, nil
}

func degrade(month string, err error) (Dashboard, error) {
	if !database.IsUnavailable(err) {
		return Dashboard{}, err
	}
	log.Warnf("database unavailable, showing empty dashboard for %s: %v", month, err)
	summary := Summary{Month: month}
	return Dashboard{
		Available: false,
		Summary:   summary,
		KPIs:      ComputeKPIs(summary),
		Breakdown: []CategoryTotal{},
		Trend:     []MonthlySavings{},
	}, nil
}

func checkPeriod(year, month int) error {
	if !utils.ValidYearMonth(year, month) {
		return fmt.Errorf("%w: %d-%d", ErrInvalidPeriod, year, month)
	}
	return nil
}
