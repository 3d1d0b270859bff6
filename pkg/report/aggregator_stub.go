package report

import (
	"context"

	"github.com/pennywise/pennywise/internal/utils"
)

// AggregatorStub returns canned results. Err, when set, is returned by every call.
type AggregatorStub struct {
	Summaries map[string]Summary
	Breakdown []CategoryTotal
	Trend     []MonthlySavings
	Err       error
}

func NewAggregatorStub() *AggregatorStub {
	return &AggregatorStub{Summaries: map[string]Summary{}}
}

func (s *AggregatorStub) MonthlySummary(ctx context.Context, year, month int) (Summary, error) {
	if s.Err != nil {
		return Summary{}, s.Err
	}
	key := utils.MonthKey(year, month)
	summary, ok := s.Summaries[key]
	if !ok {
		return Summary{Month: key}, nil
	}
	return summary, nil
}

func (s *AggregatorStub) ExpenseBreakdown(ctx context.Context, year, month int) ([]CategoryTotal, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]CategoryTotal{}, s.Breakdown...), nil
}

func (s *AggregatorStub) MonthlySavingsTrend(ctx context.Context) ([]MonthlySavings, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]MonthlySavings{}, s.Trend...), nil
}

func (s *AggregatorStub) Cleanup() {
	s.Summaries = map[string]Summary{}
	s.Breakdown = nil
	s.Trend = nil
	s.Err = nil
}
