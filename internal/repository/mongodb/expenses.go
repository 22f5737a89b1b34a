package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salonhq/ledger/internal/domain/models"
)

// InsertExpense persists a new expense record.
func (r *Repository) InsertExpense(ctx context.Context, rec models.ExpenseRecord) (models.ExpenseRecord, error) {
	res, err := r.db.Collection(collExpenses).InsertOne(ctx, rec)
	if err != nil {
		return models.ExpenseRecord{}, fmt.Errorf("insert expense: %w", err)
	}
	rec.ID = res.InsertedID.(primitive.ObjectID)
	return rec, nil
}

// FindExpenses returns every expense record, newest first.
func (r *Repository) FindExpenses(ctx context.Context) ([]models.ExpenseRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.db.Collection(collExpenses).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ExpenseRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return records, nil
}

// SumExpensesForMonth sums the amount of every expense booked against the
// given month and year. Zero when nothing matches.
func (r *Repository) SumExpensesForMonth(ctx context.Context, year, month int) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"year": year, "month": month}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.db.Collection(collExpenses).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode expense sum: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
