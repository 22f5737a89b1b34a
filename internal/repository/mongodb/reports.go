package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salonhq/ledger/internal/domain/models"
)

// SaveMonthlyReport stores a monthly reconciliation snapshot. A rerun for the
// same month replaces the previous snapshot instead of duplicating it.
func (r *Repository) SaveMonthlyReport(ctx context.Context, report models.MonthlyReport) error {
	filter := bson.M{"year": report.Year, "month": report.Month}
	update := bson.M{"$set": bson.M{
		"total_services": report.TotalServices,
		"total_expenses": report.TotalExpenses,
		"profit":         report.Profit,
		"created_at":     report.CreatedAt,
	}}

	_, err := r.db.Collection(collMonthlyReports).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save monthly report: %w", err)
	}
	return nil
}
