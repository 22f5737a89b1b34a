package reporting

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/domain/models"
	repo "github.com/salonhq/ledger/internal/repository/mongodb"
)

const defaultPageLimit = 10

// paymentTypeAll is the sentinel meaning "do not filter on payment type".
const paymentTypeAll = "all"

// ListParams selects a page of services. An absent date range defaults to the
// trailing seven days.
type ListParams struct {
	Page        int64
	Limit       int64
	StartDate   string
	EndDate     string
	PaymentType string
}

// ListServices returns one page of matching services joined to their staff
// identity, together with the match count and amount sum over the whole
// filter. A valid query with zero matches returns ErrNotFound; a page number
// past the last page returns an empty page with Total still populated.
func (s *Service) ListServices(ctx context.Context, p ListParams) (models.ServiceListing, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}

	rng, err := ResolveRange(RangeParams{StartDate: p.StartDate, EndDate: p.EndDate}, s.now(), s.loc)
	if err != nil {
		return models.ServiceListing{}, err
	}

	filter := repo.ServiceFilter{Start: rng.Start, End: rng.End}
	if pt := strings.ToLower(strings.TrimSpace(p.PaymentType)); pt != "" && pt != paymentTypeAll {
		filter.PaymentType = pt
	}

	listing := models.ServiceListing{
		Items: []models.ServiceWithStaff{},
		Page:  p.Page,
		Limit: p.Limit,
	}

	total, err := s.store.CountServices(ctx, filter)
	if err != nil {
		return models.ServiceListing{}, fmt.Errorf("count services: %w", err)
	}
	if total == 0 {
		return listing, ErrNotFound
	}
	listing.Total = total

	totalAmount, err := s.store.SumServiceAmounts(ctx, filter)
	if err != nil {
		return models.ServiceListing{}, fmt.Errorf("sum service amounts: %w", err)
	}
	listing.TotalAmount = totalAmount

	items, err := s.store.FindServicesPage(ctx, filter, (p.Page-1)*p.Limit, p.Limit)
	if err != nil {
		return models.ServiceListing{}, fmt.Errorf("fetch services page: %w", err)
	}
	if items != nil {
		listing.Items = items
	}

	s.logger.Debug("services listed",
		zap.Int64("page", p.Page),
		zap.Int64("limit", p.Limit),
		zap.Int64("total", total))

	return listing, nil
}
