package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/domain/models"
	repo "github.com/salonhq/ledger/internal/repository/mongodb"
	"github.com/salonhq/ledger/internal/service/reporting"
)

// ErrInvalidInput marks a record that violates the ledger invariants; the
// detail is carried in the wrapped message.
var ErrInvalidInput = errors.New("invalid input")

const dateLayout = "2006-01-02"

// Service handles record creation and the simple per-entity reads: services,
// expenses, the staff directory and water logs. Records are immutable once
// written; the only mutation here is the staff status toggle.
type Service struct {
	store  repo.LedgerStore
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new ledger service instance.
func NewService(store repo.LedgerStore, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:  store,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// CreateService records a rendered service for the given staff member. The
// occurrence time defaults to now.
func (s *Service) CreateService(ctx context.Context, staffID primitive.ObjectID, req models.AddServiceRequest) (models.ServiceRecord, error) {
	serviceType := strings.TrimSpace(req.Type)
	if serviceType == "" {
		return models.ServiceRecord{}, fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	if req.Amount < 0 {
		return models.ServiceRecord{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	paymentType := strings.ToLower(strings.TrimSpace(req.PaymentType))
	if paymentType != models.PaymentCash && paymentType != models.PaymentOnline {
		return models.ServiceRecord{}, fmt.Errorf("%w: paymentType must be cash or online", ErrInvalidInput)
	}

	now := s.now().In(s.loc)
	rec, err := s.store.InsertService(ctx, models.ServiceRecord{
		StaffID:     staffID,
		Type:        serviceType,
		Amount:      req.Amount,
		PaymentType: paymentType,
		OccurredAt:  now,
		CreatedAt:   now,
	})
	if err != nil {
		return models.ServiceRecord{}, fmt.Errorf("create service: %w", err)
	}

	s.logger.Info("service recorded",
		zap.String("staff_id", staffID.Hex()),
		zap.String("type", serviceType),
		zap.Float64("amount", req.Amount))

	return rec, nil
}

// ServicesForToday returns the staff member's own services for the current
// calendar day, newest first.
func (s *Service) ServicesForToday(ctx context.Context, staffID primitive.ObjectID) ([]models.ServiceRecord, error) {
	today := s.now().In(s.loc).Format(dateLayout)
	rng, err := reporting.ResolveRange(reporting.RangeParams{Date: today}, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	records, err := s.store.FindServicesByStaff(ctx, staffID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("fetch today's services: %w", err)
	}
	if records == nil {
		records = []models.ServiceRecord{}
	}
	return records, nil
}

// CreateExpense records a business expense against a month and year.
func (s *Service) CreateExpense(ctx context.Context, req models.CreateExpenseRequest) (models.ExpenseRecord, error) {
	item := strings.TrimSpace(req.Item)
	if item == "" {
		return models.ExpenseRecord{}, fmt.Errorf("%w: item is required", ErrInvalidInput)
	}
	if req.Amount < 1 {
		return models.ExpenseRecord{}, fmt.Errorf("%w: amount must be at least 1", ErrInvalidInput)
	}
	if req.Month < 1 || req.Month > 12 {
		return models.ExpenseRecord{}, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	if req.Year < 1 {
		return models.ExpenseRecord{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	rec, err := s.store.InsertExpense(ctx, models.ExpenseRecord{
		Item:      item,
		Amount:    req.Amount,
		Notes:     strings.TrimSpace(req.Notes),
		Month:     req.Month,
		Year:      req.Year,
		CreatedAt: s.now().In(s.loc),
	})
	if err != nil {
		return models.ExpenseRecord{}, fmt.Errorf("create expense: %w", err)
	}

	s.logger.Info("expense recorded",
		zap.String("item", item),
		zap.Float64("amount", req.Amount),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year))

	return rec, nil
}

// ListExpenses returns every recorded expense, newest first.
func (s *Service) ListExpenses(ctx context.Context) ([]models.ExpenseRecord, error) {
	records, err := s.store.FindExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if records == nil {
		records = []models.ExpenseRecord{}
	}
	return records, nil
}

// ListStaff returns the staff directory, password hashes excluded.
func (s *Service) ListStaff(ctx context.Context) ([]models.User, error) {
	users, err := s.store.FindStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// SetStaffStatus flips a staff account between active and inactive.
func (s *Service) SetStaffStatus(ctx context.Context, idHex, status string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return fmt.Errorf("%w: malformed staff id %q", ErrInvalidInput, idHex)
	}
	if status != models.StatusActive && status != models.StatusInactive {
		return fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
	}

	if err := s.store.UpdateUserStatus(ctx, id, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return err
		}
		return fmt.Errorf("set staff status: %w", err)
	}

	s.logger.Info("staff status changed", zap.String("staff_id", idHex), zap.String("status", status))
	return nil
}

// PourWater upserts today's watering log for the staff member. A second call
// on the same day overwrites the status instead of adding a row.
func (s *Service) PourWater(ctx context.Context, staffID primitive.ObjectID, status string) (models.WaterLog, error) {
	if status != models.WaterYes && status != models.WaterNo {
		return models.WaterLog{}, fmt.Errorf("%w: status must be yes or no", ErrInvalidInput)
	}

	now := s.now().In(s.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	log, err := s.store.UpsertWaterLog(ctx, models.WaterLog{
		StaffID:   staffID,
		Day:       day,
		Status:    status,
		CreatedAt: now,
	})
	if err != nil {
		return models.WaterLog{}, fmt.Errorf("pour water: %w", err)
	}
	return log, nil
}

// WaterDetails lists watering logs for the resolved date range (same range
// selectors and defaults as the reporting queries).
func (s *Service) WaterDetails(ctx context.Context, p reporting.RangeParams) ([]models.WaterLog, error) {
	rng, err := reporting.ResolveRange(p, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	logs, err := s.store.FindWaterLogs(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("fetch water logs: %w", err)
	}
	if logs == nil {
		logs = []models.WaterLog{}
	}
	return logs, nil
}
