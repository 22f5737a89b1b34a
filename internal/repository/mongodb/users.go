package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salonhq/ledger/internal/domain/models"
)

// InsertUser persists a new account. ErrDuplicate when the email is taken.
func (r *Repository) InsertUser(ctx context.Context, user models.User) (models.User, error) {
	res, err := r.db.Collection(collUsers).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, fmt.Errorf("%w: email %s", ErrDuplicate, user.Email)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// FindUserByEmail looks up one account by email. ErrNotFound when absent.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// FindStaff lists every account with the staff role. Password hashes are
// excluded at the query level, not just at serialization.
func (r *Repository) FindStaff(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "username", Value: 1}})

	cursor, err := r.db.Collection(collUsers).Find(ctx, bson.M{"role": models.RoleStaff}, opts)
	if err != nil {
		return nil, fmt.Errorf("find staff: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode staff: %w", err)
	}
	return users, nil
}

// UpdateUserStatus sets the status field of one account. ErrNotFound when no
// account has the given id.
func (r *Repository) UpdateUserStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.db.Collection(collUsers).UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
