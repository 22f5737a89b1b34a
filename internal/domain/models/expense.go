package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpenseRecord is one recorded business expense attributed to a month/year.
// Records are immutable once created.
type ExpenseRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Item      string             `bson:"item" json:"item"`
	Amount    float64            `bson:"amount" json:"amount"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Month     int                `bson:"month" json:"month"`
	Year      int                `bson:"year" json:"year"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// CreateExpenseRequest is the payload for recording an expense.
type CreateExpenseRequest struct {
	Item   string  `json:"item" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Notes  string  `json:"notes"`
	Month  int     `json:"month" binding:"required"`
	Year   int     `json:"year" binding:"required"`
}
