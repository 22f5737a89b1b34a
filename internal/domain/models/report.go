package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayBucket is the per-calendar-day aggregate emitted by the services rollup.
// Date is a YYYY-MM-DD string in the business timezone. Days with no records
// carry zero totals and an empty staff list.
type DayBucket struct {
	Date        string   `json:"date"`
	TotalAmount float64  `json:"totalAmount"`
	Count       int64    `json:"count"`
	StaffIDs    []string `json:"staffIds"`
}

// DayGroup is one grouped aggregation row coming back from the record store,
// keyed by YYYY-MM-DD. The rollup gap-fills these into a dense DayBucket series.
type DayGroup struct {
	Day         string               `bson:"_id"`
	TotalAmount float64              `bson:"total_amount"`
	Count       int64                `bson:"count"`
	StaffIDs    []primitive.ObjectID `bson:"staff_ids"`
}

// ProfitReport reconciles a month's service income against its expenses.
type ProfitReport struct {
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	TotalServices float64 `json:"totalServices"`
	TotalExpenses float64 `json:"totalExpenses"`
	Profit        float64 `json:"profit"`
}

// MonthlyReport is a persisted snapshot of a month's reconciliation, written
// by the scheduler so closed months keep a durable record.
type MonthlyReport struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Month         int                `bson:"month" json:"month"`
	Year          int                `bson:"year" json:"year"`
	TotalServices float64            `bson:"total_services" json:"totalServices"`
	TotalExpenses float64            `bson:"total_expenses" json:"totalExpenses"`
	Profit        float64            `bson:"profit" json:"profit"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
