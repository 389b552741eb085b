package asset

import (
	"context"
	"net/url"
	"sort"

	"github.com/advisordesk/advisordesk/internal/cache"
	"github.com/advisordesk/advisordesk/internal/query"
)

// Allocation is the share of portfolio value held in one category.
type Allocation struct {
	Category   Category `json:"category"`
	Value      float64  `json:"value"`
	Percentage float64  `json:"percentage"`
}

// PortfolioSummary is the derived rollup over a (possibly filtered) asset
// collection. Empty input yields a zeroed summary, never NaN or Inf.
type PortfolioSummary struct {
	TotalValue                 float64      `json:"totalValue"`
	TotalCostBasis             float64      `json:"totalCostBasis"`
	TotalUnrealizedGain        float64      `json:"totalUnrealizedGain"`
	TotalUnrealizedGainPercent float64      `json:"totalUnrealizedGainPercent"`
	TodayGain                  float64      `json:"todayGain"`
	TodayGainPercent           float64      `json:"todayGainPercent"`
	AssetAllocation            []Allocation `json:"assetAllocation"`
}

// Summarize reduces assets to a portfolio summary. The result is pure and
// order-independent.
func Summarize(assets []Asset) PortfolioSummary {
	var s PortfolioSummary

	for _, a := range assets {
		s.TotalValue += a.TotalValue
		s.TotalCostBasis += a.CostBasis
		s.TodayGain += a.TotalValue * a.Performance.Day / 100
	}

	s.TotalUnrealizedGain = s.TotalValue - s.TotalCostBasis
	s.TotalUnrealizedGainPercent = query.Percent(s.TotalUnrealizedGain, s.TotalCostBasis)
	s.TodayGainPercent = query.Percent(s.TodayGain, s.TotalValue)
	s.AssetAllocation = allocationByCategory(assets, s.TotalValue)

	return s
}

func allocationByCategory(assets []Asset, totalValue float64) []Allocation {
	byCategory := make(map[Category]float64)
	order := make([]Category, 0)

	for _, a := range assets {
		if _, seen := byCategory[a.Category]; !seen {
			order = append(order, a.Category)
		}

		byCategory[a.Category] += a.TotalValue
	}

	allocation := make([]Allocation, 0, len(order))

	for _, c := range order {
		allocation = append(allocation, Allocation{
			Category:   c,
			Value:      byCategory[c],
			Percentage: query.Percent(byCategory[c], totalValue),
		})
	}

	// Largest slice first, stable for equal values.
	sort.SliceStable(allocation, func(i, j int) bool {
		return allocation[i].Value > allocation[j].Value
	})

	return allocation
}

// Summary fetches the snapshot, applies an optional category filter and
// reduces it to a portfolio summary.
func (s *Service) Summary(ctx context.Context, p Params) (PortfolioSummary, error) {
	category, err := query.ParseEnum("category", p.Category, Categories())
	if err != nil {
		return PortfolioSummary{}, err
	}

	v := url.Values{}
	if category != nil {
		v.Set("category", string(*category))
	}

	key := cache.Key("portfolio-summary", v)
	if summary, ok := cache.Lookup[PortfolioSummary](s.cache, key); ok {
		return summary, nil
	}

	matched, err := s.fetch(ctx, category)
	if err != nil {
		return PortfolioSummary{}, err
	}

	summary := Summarize(matched)
	s.cache.Set(key, summary)

	return summary, nil
}

// TopPerformers returns the limit best assets by day performance, descending.
// Ties keep their snapshot order.
func TopPerformers(assets []Asset, limit int) []Asset {
	ranked := make([]Asset, len(assets))
	copy(ranked, assets)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Performance.Day > ranked[j].Performance.Day
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// TopPerformers fetches the snapshot, applies an optional category filter
// and ranks the result by day performance.
func (s *Service) TopPerformers(ctx context.Context, p Params, limit int) ([]Asset, error) {
	category, err := query.ParseEnum("category", p.Category, Categories())
	if err != nil {
		return nil, err
	}

	matched, err := s.fetch(ctx, category)
	if err != nil {
		return nil, err
	}

	return TopPerformers(matched, limit), nil
}

// DayChangeTotals is today's absolute and relative portfolio move.
type DayChangeTotals struct {
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// DayChange applies an optional category filter and reduces the snapshot to
// today's portfolio move.
func (s *Service) DayChange(ctx context.Context, p Params) (DayChangeTotals, error) {
	category, err := query.ParseEnum("category", p.Category, Categories())
	if err != nil {
		return DayChangeTotals{}, err
	}

	matched, err := s.fetch(ctx, category)
	if err != nil {
		return DayChangeTotals{}, err
	}

	change, percent := DayChange(matched)

	return DayChangeTotals{Change: change, ChangePercent: percent}, nil
}

// DayChange backs the previous portfolio value out of each asset's day
// performance and returns today's absolute and relative change. An asset at
// −100% or worse contributes zero change: the backed-out previous value is
// degenerate there, so the ambiguity resolves to no movement.
func DayChange(assets []Asset) (change, percent float64) {
	var totalValue float64

	for _, a := range assets {
		totalValue += a.TotalValue

		if a.Performance.Day <= -100 {
			continue
		}

		previous := a.TotalValue / (1 + a.Performance.Day/100)
		change += a.TotalValue - previous
	}

	return change, query.Percent(change, totalValue-change)
}
