package reporting

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/domain/models"
	repo "github.com/salonhq/ledger/internal/repository/mongodb"
)

// RollupServices groups matching services by calendar day and returns one
// bucket per day of the resolved range, strictly ascending, with days that saw
// no services filled in as zero buckets. The series is always dense: its
// length equals the inclusive day count of the range.
func (s *Service) RollupServices(ctx context.Context, p RangeParams) ([]models.DayBucket, error) {
	rng, err := ResolveRange(p, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.GroupServicesByDay(ctx, repo.ServiceFilter{Start: rng.Start, End: rng.End})
	if err != nil {
		return nil, fmt.Errorf("group services by day: %w", err)
	}

	byDay := make(map[string]models.DayGroup, len(groups))
	for _, g := range groups {
		byDay[g.Day] = g
	}

	var buckets []models.DayBucket
	for day := startOfDay(rng.Start); !day.After(rng.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		g, ok := byDay[key]
		if !ok {
			buckets = append(buckets, models.DayBucket{Date: key, StaffIDs: []string{}})
			continue
		}

		staffIDs := make([]string, 0, len(g.StaffIDs))
		for _, id := range g.StaffIDs {
			staffIDs = append(staffIDs, id.Hex())
		}
		// $addToSet yields no stable order; sort for deterministic output.
		sort.Strings(staffIDs)

		buckets = append(buckets, models.DayBucket{
			Date:        key,
			TotalAmount: g.TotalAmount,
			Count:       g.Count,
			StaffIDs:    staffIDs,
		})
	}

	s.logger.Debug("services rolled up",
		zap.String("start", rng.Start.Format(dateLayout)),
		zap.String("end", rng.End.Format(dateLayout)),
		zap.Int("days", len(buckets)))

	return buckets, nil
}
