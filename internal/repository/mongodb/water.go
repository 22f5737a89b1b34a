package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salonhq/ledger/internal/domain/models"
)

// UpsertWaterLog records a watering status for (staff, day), replacing the
// status if an entry for that day already exists. The unique index on
// (staff_id, day) backs the one-log-per-day invariant.
func (r *Repository) UpsertWaterLog(ctx context.Context, log models.WaterLog) (models.WaterLog, error) {
	filter := bson.M{"staff_id": log.StaffID, "day": log.Day}
	update := bson.M{
		"$set":         bson.M{"status": log.Status},
		"$setOnInsert": bson.M{"created_at": log.CreatedAt},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved models.WaterLog
	err := r.db.Collection(collWaterLogs).FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	if err != nil {
		return models.WaterLog{}, fmt.Errorf("upsert water log: %w", err)
	}
	return saved, nil
}

// FindWaterLogs returns every watering log whose day falls inside the
// inclusive range, ascending by day.
func (r *Repository) FindWaterLogs(ctx context.Context, start, end time.Time) ([]models.WaterLog, error) {
	filter := bson.M{"day": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().SetSort(bson.D{{Key: "day", Value: 1}, {Key: "staff_id", Value: 1}})

	cursor, err := r.db.Collection(collWaterLogs).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find water logs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []models.WaterLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode water logs: %w", err)
	}
	return logs, nil
}
