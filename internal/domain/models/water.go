package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Water log statuses.
const (
	WaterYes = "yes"
	WaterNo  = "no"
)

// WaterLog tracks whether a staff member watered the plants on a given day.
// At most one log exists per (staff, day); the day field is normalized to
// midnight in the business timezone.
type WaterLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StaffID   primitive.ObjectID `bson:"staff_id" json:"staffId"`
	Day       time.Time          `bson:"day" json:"date"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// PourWaterRequest records today's watering status for the caller.
type PourWaterRequest struct {
	Status string `json:"status" binding:"required"`
}
