package reporting

import (
	"time"

	"go.uber.org/zap"

	repo "github.com/salonhq/ledger/internal/repository/mongodb"
)

// Service answers reporting queries over the service/expense ledger: paginated
// filtered listings, daily time-series rollups and monthly profit
// reconciliation. All operations are read-only.
type Service struct {
	store  repo.ReportingStore
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new reporting service instance. loc is the business
// timezone all day boundaries are computed in.
func NewService(store repo.ReportingStore, loc *time.Location, logger *zap.Logger) *Service {
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
