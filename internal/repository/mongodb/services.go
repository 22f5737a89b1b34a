package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salonhq/ledger/internal/domain/models"
)

// InsertService persists a new service record.
func (r *Repository) InsertService(ctx context.Context, rec models.ServiceRecord) (models.ServiceRecord, error) {
	res, err := r.db.Collection(collServices).InsertOne(ctx, rec)
	if err != nil {
		return models.ServiceRecord{}, fmt.Errorf("insert service: %w", err)
	}
	rec.ID = res.InsertedID.(primitive.ObjectID)
	return rec, nil
}

// FindServicesByStaff returns one staff member's services between the two
// instants (inclusive), newest first.
func (r *Repository) FindServicesByStaff(ctx context.Context, staffID primitive.ObjectID, start, end time.Time) ([]models.ServiceRecord, error) {
	filter := ServiceFilter{Start: start, End: end, StaffID: staffID}.match()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.db.Collection(collServices).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find services by staff: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ServiceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return records, nil
}

// CountServices counts every record matching the filter.
func (r *Repository) CountServices(ctx context.Context, f ServiceFilter) (int64, error) {
	total, err := r.db.Collection(collServices).CountDocuments(ctx, f.match())
	if err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return total, nil
}

// SumServiceAmounts sums the amount of every record matching the filter.
func (r *Repository) SumServiceAmounts(ctx context.Context, f ServiceFilter) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: f.match()}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.db.Collection(collServices).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum service amounts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode service sum: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// FindServicesPage returns one page of matching services, newest first with
// the record id as tie-breaker, each left-joined to the owning staff account.
// Records whose staff account was deleted still appear, with empty staff
// fields.
func (r *Repository) FindServicesPage(ctx context.Context, f ServiceFilter, skip, limit int64) ([]models.ServiceWithStaff, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: f.match()}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         collUsers,
			"localField":   "staff_id",
			"foreignField": "_id",
			"as":           "staff",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"staff_username": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$staff.username", 0}}, ""}},
			"staff_email":    bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$staff.email", 0}}, ""}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"staff": 0}}},
	}

	cursor, err := r.db.Collection(collServices).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find services page: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.ServiceWithStaff
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode services page: %w", err)
	}
	return items, nil
}

// GroupServicesByDay aggregates matching services into per-day groups keyed by
// YYYY-MM-DD in the business timezone, ascending.
func (r *Repository) GroupServicesByDay(ctx context.Context, f ServiceFilter) ([]models.DayGroup, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: f.match()}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$occurred_at",
				"timezone": r.tz,
			}},
			"total_amount": bson.M{"$sum": "$amount"},
			"count":        bson.M{"$sum": 1},
			"staff_ids":    bson.M{"$addToSet": "$staff_id"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.db.Collection(collServices).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group services by day: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []models.DayGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode day groups: %w", err)
	}
	return groups, nil
}
