package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/domain/models"
	repo "github.com/salonhq/ledger/internal/repository/mongodb"
)

// MonthlyProfit reconciles a month: total service income minus total expenses.
// Both year and month are required; a month outside 1-12 is not rejected, it
// simply matches nothing and yields zero totals.
func (s *Service) MonthlyProfit(ctx context.Context, year, month int) (models.ProfitReport, error) {
	if year == 0 {
		return models.ProfitReport{}, fmt.Errorf("%w: year", ErrMissingParameter)
	}
	if month == 0 {
		return models.ProfitReport{}, fmt.Errorf("%w: month", ErrMissingParameter)
	}

	totalExpenses, err := s.store.SumExpensesForMonth(ctx, year, month)
	if err != nil {
		return models.ProfitReport{}, fmt.Errorf("sum expenses: %w", err)
	}

	// The store keeps millisecond timestamps, so ending at one millisecond
	// before the first instant of the next month is the half-open interval
	// [firstOfMonth, firstOfNextMonth).
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)

	totalServices, err := s.store.SumServiceAmounts(ctx, repo.ServiceFilter{Start: start, End: end})
	if err != nil {
		return models.ProfitReport{}, fmt.Errorf("sum services: %w", err)
	}

	report := models.ProfitReport{
		Month:         month,
		Year:          year,
		TotalServices: totalServices,
		TotalExpenses: totalExpenses,
		Profit:        totalServices - totalExpenses,
	}

	s.logger.Debug("monthly profit reconciled",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Float64("profit", report.Profit))

	return report, nil
}
