package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment types accepted for a service.
const (
	PaymentCash   = "cash"
	PaymentOnline = "online"
)

// ServiceRecord is one billable service event performed by a staff member.
// Records are immutable once created.
type ServiceRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StaffID     primitive.ObjectID `bson:"staff_id" json:"staffId"`
	Type        string             `bson:"type" json:"type"`
	Amount      float64            `bson:"amount" json:"amount"`
	PaymentType string             `bson:"payment_type" json:"paymentType"`
	OccurredAt  time.Time          `bson:"occurred_at" json:"date"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// ServiceWithStaff is a ServiceRecord joined to the owning staff identity.
// The staff fields stay empty when the referenced account no longer exists.
type ServiceWithStaff struct {
	ServiceRecord `bson:",inline"`
	StaffUsername string `bson:"staff_username" json:"staffUsername,omitempty"`
	StaffEmail    string `bson:"staff_email" json:"staffEmail,omitempty"`
}

// AddServiceRequest is the payload for recording a rendered service.
type AddServiceRequest struct {
	Type        string  `json:"type" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	PaymentType string  `json:"paymentType" binding:"required"`
}

// ServiceListing is a filtered page of services plus whole-filter totals.
// Total and TotalAmount cover every matching record, not just the page.
type ServiceListing struct {
	Items       []ServiceWithStaff `json:"services"`
	Total       int64              `json:"total"`
	TotalAmount float64            `json:"totalAmount"`
	Page        int64              `json:"page"`
	Limit       int64              `json:"limit"`
}
