package lead

import (
	"context"
	"sort"

	"github.com/advisordesk/advisordesk/internal/cache"
	"github.com/advisordesk/advisordesk/internal/query"
)

// StatusCount is one slice of the funnel's status breakdown.
type StatusCount struct {
	Status     Status  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ChannelCount is one slice of the funnel's source breakdown.
type ChannelCount struct {
	Source     Channel `json:"source"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Analytics is the derived funnel rollup over a (possibly filtered) lead
// collection. Empty input yields a zeroed structure.
type Analytics struct {
	TotalLeads            int            `json:"totalLeads"`
	TotalPotentialValue   float64        `json:"totalPotentialValue"`
	AveragePotentialValue float64        `json:"averagePotentialValue"`
	ClosedWon             int            `json:"closedWon"`
	ClosedLost            int            `json:"closedLost"`
	ConversionRate        float64        `json:"conversionRate"`
	StatusBreakdown       []StatusCount  `json:"statusBreakdown"`
	SourceBreakdown       []ChannelCount `json:"sourceBreakdown"`
}

// Analyze reduces leads to funnel analytics. Breakdown entries appear in
// first-seen order so repeated runs over the same snapshot are identical.
func Analyze(leads []Lead) Analytics {
	a := Analytics{TotalLeads: len(leads)}

	byStatus := make(map[Status]int)
	statusOrder := make([]Status, 0)
	bySource := make(map[Channel]int)
	sourceOrder := make([]Channel, 0)

	for _, l := range leads {
		a.TotalPotentialValue += l.PotentialValue

		if _, seen := byStatus[l.Status]; !seen {
			statusOrder = append(statusOrder, l.Status)
		}

		byStatus[l.Status]++

		if _, seen := bySource[l.Source]; !seen {
			sourceOrder = append(sourceOrder, l.Source)
		}

		bySource[l.Source]++

		switch l.Status {
		case StatusClosedWon:
			a.ClosedWon++
		case StatusClosedLost:
			a.ClosedLost++
		}
	}

	total := float64(a.TotalLeads)
	a.AveragePotentialValue = query.Ratio(a.TotalPotentialValue, total)
	a.ConversionRate = query.Percent(float64(a.ClosedWon), total)

	a.StatusBreakdown = make([]StatusCount, 0, len(statusOrder))
	for _, st := range statusOrder {
		a.StatusBreakdown = append(a.StatusBreakdown, StatusCount{
			Status:     st,
			Count:      byStatus[st],
			Percentage: query.Percent(float64(byStatus[st]), total),
		})
	}

	a.SourceBreakdown = make([]ChannelCount, 0, len(sourceOrder))
	for _, ch := range sourceOrder {
		a.SourceBreakdown = append(a.SourceBreakdown, ChannelCount{
			Source:     ch,
			Count:      bySource[ch],
			Percentage: query.Percent(float64(bySource[ch]), total),
		})
	}

	return a
}

// Analytics fetches the snapshot, applies the validated filter parameters and
// reduces the matches to funnel analytics. Pagination and sort parameters are
// ignored; the rollup covers every match.
func (s *Service) Analytics(ctx context.Context, p Params) (Analytics, error) {
	r, err := parseParams(p)
	if err != nil {
		return Analytics{}, err
	}

	v := r.values()

	key := cache.Key("lead-analytics", v)
	if a, ok := cache.Lookup[Analytics](s.cache, key); ok {
		return a, nil
	}

	matched, err := s.fetch(ctx, r.filter)
	if err != nil {
		return Analytics{}, err
	}

	a := Analyze(matched)
	s.cache.Set(key, a)

	return a, nil
}

// ChannelStat is one acquisition channel's share of the filtered funnel.
type ChannelStat struct {
	Source     Channel `json:"source"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	TotalValue float64 `json:"totalValue"`
}

// BreakdownByChannel groups leads by acquisition source, busiest channel
// first. Ties keep first-seen order.
func BreakdownByChannel(leads []Lead) []ChannelStat {
	type agg struct {
		count int
		value float64
	}

	byChannel := make(map[Channel]*agg)
	order := make([]Channel, 0)

	for _, l := range leads {
		a, seen := byChannel[l.Source]
		if !seen {
			a = &agg{}
			byChannel[l.Source] = a
			order = append(order, l.Source)
		}

		a.count++
		a.value += l.PotentialValue
	}

	total := float64(len(leads))
	stats := make([]ChannelStat, 0, len(order))

	for _, ch := range order {
		stats = append(stats, ChannelStat{
			Source:     ch,
			Count:      byChannel[ch].count,
			Percentage: query.Percent(float64(byChannel[ch].count), total),
			TotalValue: byChannel[ch].value,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	return stats
}

// ChannelBreakdown fetches the snapshot, filters it and groups the matches by
// acquisition source.
func (s *Service) ChannelBreakdown(ctx context.Context, p Params) ([]ChannelStat, error) {
	r, err := parseParams(p)
	if err != nil {
		return nil, err
	}

	matched, err := s.fetch(ctx, r.filter)
	if err != nil {
		return nil, err
	}

	return BreakdownByChannel(matched), nil
}

// TopProspects returns the limit open leads with the highest potential value.
// Closed leads, won or lost, are excluded.
func TopProspects(leads []Lead, limit int) []Lead {
	open := make([]Lead, 0, len(leads))

	for _, l := range leads {
		if !l.Status.Terminal() {
			open = append(open, l)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		return open[i].PotentialValue > open[j].PotentialValue
	})

	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}

	return open
}
