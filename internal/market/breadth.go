package market

import (
	"context"

	"github.com/advisordesk/advisordesk/internal/query"
)

// BreadthMetrics summarizes how broadly the market moved: mean change across
// the collection, total traded volume, and advancer/decliner counts.
type BreadthMetrics struct {
	AverageChange float64 `json:"averageChange"`
	TotalVolume   float64 `json:"totalVolume"`
	PositiveCount int     `json:"positiveCount"`
	NegativeCount int     `json:"negativeCount"`
	NeutralCount  int     `json:"neutralCount"`
}

// Breadth reduces instruments to breadth metrics. Empty input yields zeros.
func Breadth(instruments []Instrument) BreadthMetrics {
	var m BreadthMetrics

	var totalChange float64

	for _, inst := range instruments {
		totalChange += inst.ChangePercent
		m.TotalVolume += inst.Volume

		switch {
		case inst.ChangePercent > 0:
			m.PositiveCount++
		case inst.ChangePercent < 0:
			m.NegativeCount++
		default:
			m.NeutralCount++
		}
	}

	m.AverageChange = query.Ratio(totalChange, float64(len(instruments)))

	return m
}

// Breadth filters the instrument snapshot and reduces it to breadth metrics.
func (s *Service) Breadth(ctx context.Context, p Params) (BreadthMetrics, error) {
	r, err := parseParams(p)
	if err != nil {
		return BreadthMetrics{}, err
	}

	matched, err := s.fetch(ctx, r)
	if err != nil {
		return BreadthMetrics{}, err
	}

	return Breadth(matched), nil
}

// ByRegion partitions instruments into indian, us and global buckets by
// symbol.
func ByRegion(instruments []Instrument) map[Region][]Instrument {
	buckets := make(map[Region][]Instrument)

	for _, inst := range instruments {
		region := RegionOf(inst.Symbol)
		buckets[region] = append(buckets[region], inst)
	}

	return buckets
}
