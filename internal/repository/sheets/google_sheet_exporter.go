package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/salonhq/ledger/internal/config"
	"github.com/salonhq/ledger/internal/domain/models"
)

// Exporter appends monthly report snapshots to an external spreadsheet so the
// owner can eyeball closed months without touching the database.
type Exporter interface {
	AppendMonthlyReport(ctx context.Context, report models.MonthlyReport) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	reportRange   string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		reportRange:   cfg.ReportRange,
		logger:        logger,
	}, nil
}

// AppendMonthlyReport appends one row per snapshot: year, month, income,
// expenses, profit, snapshot time.
func (e *GoogleSheetExporter) AppendMonthlyReport(ctx context.Context, report models.MonthlyReport) error {
	row := []interface{}{
		report.Year,
		report.Month,
		report.TotalServices,
		report.TotalExpenses,
		report.Profit,
		report.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.reportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report row into range %s: %w", e.reportRange, err)
	}

	e.logger.Debug("monthly report appended to sheet",
		zap.Int("year", report.Year),
		zap.Int("month", report.Month))
	return nil
}
