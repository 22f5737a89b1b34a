package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/salonhq/ledger/internal/domain/models"
)

// ServiceFilter selects service records. Start and End are inclusive instants;
// PaymentType and StaffID narrow the match when set.
type ServiceFilter struct {
	Start       time.Time
	End         time.Time
	PaymentType string
	StaffID     primitive.ObjectID
}

func (f ServiceFilter) match() bson.M {
	m := bson.M{
		"occurred_at": bson.M{"$gte": f.Start, "$lte": f.End},
	}
	if f.PaymentType != "" {
		m["payment_type"] = f.PaymentType
	}
	if !f.StaffID.IsZero() {
		m["staff_id"] = f.StaffID
	}
	return m
}

// ReportingStore is the read surface the reporting queries need: filtered
// pages with the staff join, whole-filter counts and sums, and grouped
// per-day aggregation.
type ReportingStore interface {
	CountServices(ctx context.Context, f ServiceFilter) (int64, error)
	SumServiceAmounts(ctx context.Context, f ServiceFilter) (float64, error)
	FindServicesPage(ctx context.Context, f ServiceFilter, skip, limit int64) ([]models.ServiceWithStaff, error)
	GroupServicesByDay(ctx context.Context, f ServiceFilter) ([]models.DayGroup, error)
	SumExpensesForMonth(ctx context.Context, year, month int) (float64, error)
}

// LedgerStore covers record creation and the simple per-entity reads.
type LedgerStore interface {
	InsertService(ctx context.Context, rec models.ServiceRecord) (models.ServiceRecord, error)
	FindServicesByStaff(ctx context.Context, staffID primitive.ObjectID, start, end time.Time) ([]models.ServiceRecord, error)
	InsertExpense(ctx context.Context, rec models.ExpenseRecord) (models.ExpenseRecord, error)
	FindExpenses(ctx context.Context) ([]models.ExpenseRecord, error)
	FindStaff(ctx context.Context) ([]models.User, error)
	UpdateUserStatus(ctx context.Context, id primitive.ObjectID, status string) error
	UpsertWaterLog(ctx context.Context, log models.WaterLog) (models.WaterLog, error)
	FindWaterLogs(ctx context.Context, start, end time.Time) ([]models.WaterLog, error)
}

// UserStore is the account surface needed by signup and login.
type UserStore interface {
	InsertUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// ReportStore persists monthly report snapshots.
type ReportStore interface {
	SaveMonthlyReport(ctx context.Context, report models.MonthlyReport) error
}
