package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names owned by this repository.
const (
	collUsers          = "users"
	collServices       = "services"
	collExpenses       = "expenses"
	collWaterLogs      = "water_logs"
	collMonthlyReports = "monthly_reports"
)

// Sentinel errors surfaced by the repository so callers can distinguish an
// empty lookup or a uniqueness conflict from a store failure.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)

// Repository is the MongoDB-backed record store for users, services, expenses,
// water logs and monthly report snapshots.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
	tz     string
	logger *zap.Logger
}

// NewRepository connects to MongoDB, verifies the connection and ensures the
// indexes the queries rely on. tz is the IANA business timezone used when
// grouping timestamps into calendar days.
func NewRepository(ctx context.Context, uri, dbName, tz string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &Repository{
		client: client,
		db:     client.Database(dbName),
		tz:     tz,
		logger: logger,
	}

	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Repository) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collServices: {
			{Keys: bson.D{{Key: "occurred_at", Value: 1}}},
			{Keys: bson.D{{Key: "staff_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
		},
		collExpenses: {
			{Keys: bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}},
		},
		collWaterLogs: {
			// One watering log per staff member per day.
			{Keys: bson.D{{Key: "staff_id", Value: 1}, {Key: "day", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collMonthlyReports: {
			{Keys: bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, models := range indexes {
		if _, err := r.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}

	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
