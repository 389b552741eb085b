package lead

import (
	"context"
	"fmt"
	"time"

	"github.com/advisordesk/advisordesk/internal/query"
)

// Period selects the bucket width of a trend series.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Periods lists every valid trend period, for parameter validation.
func Periods() []Period {
	return []Period{PeriodDaily, PeriodWeekly, PeriodMonthly}
}

func (p Period) buckets() (count int, width time.Duration) {
	switch p {
	case PeriodWeekly:
		return 4, 7 * 24 * time.Hour
	case PeriodMonthly:
		return 12, 30 * 24 * time.Hour
	default:
		return 7, 24 * time.Hour
	}
}

// TrendPoint is one time bucket of lead activity.
type TrendPoint struct {
	Date      string `json:"date"`
	NewLeads  int    `json:"newLeads"`
	Qualified int    `json:"qualified"`
	Closed    int    `json:"closed"`
}

// Trend buckets leads by creation date into a fixed lookback window ending at
// now: 7 days, 4 weeks or 12 months, oldest bucket first. Buckets are
// half-open [start, end) so a lead lands in exactly one, and the newest
// bucket ends at now.
func Trend(leads []Lead, period Period, now time.Time) []TrendPoint {
	count, width := period.buckets()
	points := make([]TrendPoint, 0, count)

	for i := count - 1; i >= 0; i-- {
		start := now.Add(-time.Duration(i+1) * width)
		end := start.Add(width)

		point := TrendPoint{Date: bucketLabel(period, start, count-i)}

		for _, l := range leads {
			if l.CreatedDate.Before(start) || !l.CreatedDate.Before(end) {
				continue
			}

			point.NewLeads++

			if l.Status.Qualified() {
				point.Qualified++
			}

			if l.Status == StatusClosedWon {
				point.Closed++
			}
		}

		points = append(points, point)
	}

	return points
}

func bucketLabel(period Period, start time.Time, ordinal int) string {
	switch period {
	case PeriodWeekly:
		return fmt.Sprintf("Week %d", ordinal)
	case PeriodMonthly:
		return start.Format("Jan")
	default:
		return start.Format("Jan 2")
	}
}

// Trend fetches the snapshot, filters it and buckets the matches into a trend
// series ending now.
func (s *Service) Trend(ctx context.Context, p Params, period string) ([]TrendPoint, error) {
	parsed, err := query.ParseEnum("period", period, Periods())
	if err != nil {
		return nil, err
	}

	resolved := PeriodDaily
	if parsed != nil {
		resolved = *parsed
	}

	r, err := parseParams(p)
	if err != nil {
		return nil, err
	}

	matched, err := s.fetch(ctx, r.filter)
	if err != nil {
		return nil, err
	}

	return Trend(matched, resolved, time.Now()), nil
}

// TopProspects fetches the snapshot, filters it and returns the highest-value
// open leads.
func (s *Service) TopProspects(ctx context.Context, p Params, limit int) ([]Lead, error) {
	r, err := parseParams(p)
	if err != nil {
		return nil, err
	}

	matched, err := s.fetch(ctx, r.filter)
	if err != nil {
		return nil, err
	}

	return TopProspects(matched, limit), nil
}
