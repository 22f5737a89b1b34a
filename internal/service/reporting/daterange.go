package reporting

import (
	"fmt"
	"time"
)

const (
	dateLayout       = "2006-01-02"
	defaultRangeDays = 7
)

// RangeParams are the raw date selectors accepted by reporting queries. All
// values are YYYY-MM-DD strings; empty means not supplied.
type RangeParams struct {
	Date      string
	StartDate string
	EndDate   string
}

// DateRange is a resolved inclusive [Start, End] pair at day boundaries in the
// business timezone. Never persisted; recomputed per request.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ResolveRange normalizes the supplied selectors into a single DateRange.
// A single date selects that calendar day; an explicit pair selects
// [startOfDay(start), endOfDay(end)]; with no input the range defaults to the
// trailing seven calendar days ending today. Supplying only one end of an
// explicit pair is rejected rather than silently widened.
func ResolveRange(p RangeParams, now time.Time, loc *time.Location) (DateRange, error) {
	switch {
	case p.Date != "":
		day, err := parseDay(p.Date, loc)
		if err != nil {
			return DateRange{}, err
		}
		return DateRange{Start: startOfDay(day), End: endOfDay(day)}, nil

	case p.StartDate != "" && p.EndDate != "":
		start, err := parseDay(p.StartDate, loc)
		if err != nil {
			return DateRange{}, err
		}
		end, err := parseDay(p.EndDate, loc)
		if err != nil {
			return DateRange{}, err
		}
		if start.After(end) {
			return DateRange{}, fmt.Errorf("%w: startDate %s after endDate %s", ErrInvalidRange, p.StartDate, p.EndDate)
		}
		return DateRange{Start: startOfDay(start), End: endOfDay(end)}, nil

	case p.StartDate != "" || p.EndDate != "":
		return DateRange{}, fmt.Errorf("%w: startDate and endDate must be supplied together", ErrInvalidRange)

	default:
		today := now.In(loc)
		return DateRange{
			Start: startOfDay(today.AddDate(0, 0, -(defaultRangeDays - 1))),
			End:   endOfDay(today),
		}, nil
	}
}

func parseDay(value string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: cannot parse date %q", ErrInvalidRange, value)
	}
	return day, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
