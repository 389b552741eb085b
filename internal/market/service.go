package market

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/advisordesk/advisordesk/internal/cache"
	"github.com/advisordesk/advisordesk/internal/query"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=market
type Source interface {
	Market(ctx context.Context) ([]Instrument, error)
}

// Service answers market summary queries against instrument snapshots.
type Service struct {
	source Source
	cache  *cache.Cache
}

func NewService(source Source, c *cache.Cache) *Service {
	return &Service{source: source, cache: c}
}

// Params is the flat parameter set of a market query. The date range trims
// each instrument's historical series, not the instrument set itself.
type Params struct {
	Symbols  string
	Sector   string
	DateFrom string
	DateTo   string
}

// SectorPerformance is the mean change of one sector's tradables.
type SectorPerformance struct {
	Sector        string  `json:"sector"`
	ChangePercent float64 `json:"changePercent"`
}

// Summary is the derived market rollup: indices, the five biggest absolute
// movers among tradables, and per-sector mean performance.
type Summary struct {
	Indices           []Instrument        `json:"indices"`
	TopMovers         []Instrument        `json:"topMovers"`
	SectorPerformance []SectorPerformance `json:"sectorPerformance"`
}

type resolved struct {
	symbols []string
	sector  string
	from    *time.Time
	to      *time.Time
}

func parseParams(p Params) (resolved, error) {
	var r resolved

	var err error

	if r.symbols, err = query.ParseSymbols(p.Symbols); err != nil {
		return r, err
	}

	r.sector = query.SanitizeSearch(p.Sector)

	if r.from, err = query.ParseDate("startDate", p.DateFrom); err != nil {
		return r, err
	}

	if r.to, err = query.ParseDate("endDate", p.DateTo); err != nil {
		return r, err
	}

	return r, nil
}

func (r resolved) values() url.Values {
	v := url.Values{}

	if len(r.symbols) > 0 {
		v.Set("symbols", strings.Join(r.symbols, ","))
	}

	if r.sector != "" {
		v.Set("sector", r.sector)
	}

	if r.from != nil {
		v.Set("startDate", r.from.Format(time.RFC3339))
	}

	if r.to != nil {
		v.Set("endDate", r.to.Format(time.RFC3339))
	}

	return v
}

// Summary filters the instrument snapshot and reduces it to a market summary.
func (s *Service) Summary(ctx context.Context, p Params) (Summary, error) {
	r, err := parseParams(p)
	if err != nil {
		return Summary{}, err
	}

	key := cache.Key("market-summary", r.values())
	if summary, ok := cache.Lookup[Summary](s.cache, key); ok {
		return summary, nil
	}

	matched, err := s.fetch(ctx, r)
	if err != nil {
		return Summary{}, err
	}

	summary := Summarize(matched)
	s.cache.Set(key, summary)

	return summary, nil
}

func (s *Service) fetch(ctx context.Context, r resolved) ([]Instrument, error) {
	snapshot, err := s.source.Market(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching market data: %w", err)
	}

	wanted := make(map[string]bool, len(r.symbols))
	for _, sym := range r.symbols {
		wanted[sym] = true
	}

	matched := make([]Instrument, 0, len(snapshot))

	for _, inst := range snapshot {
		if len(wanted) > 0 && !wanted[inst.Symbol] {
			continue
		}

		if r.sector != "" && inst.Sector != r.sector {
			continue
		}

		if r.from != nil || r.to != nil {
			inst.HistoricalData = trimSeries(inst.HistoricalData, r.from, r.to)
		}

		matched = append(matched, inst)
	}

	return matched, nil
}

// trimSeries keeps the closes inside the inclusive date range. The series
// stays in its original chronological order.
func trimSeries(series []ClosePrice, from, to *time.Time) []ClosePrice {
	trimmed := make([]ClosePrice, 0, len(series))

	for _, cp := range series {
		if from != nil && cp.Date.Before(*from) {
			continue
		}

		if to != nil && cp.Date.After(*to) {
			continue
		}

		trimmed = append(trimmed, cp)
	}

	return trimmed
}

// Summarize reduces instruments to a market summary. Movers rank by absolute
// change percent, ties keeping snapshot order; sector means exclude indices
// and unlabelled instruments and sort best sector first.
func Summarize(instruments []Instrument) Summary {
	var indices, tradables []Instrument

	for _, inst := range instruments {
		if inst.Index() {
			indices = append(indices, inst)
		} else {
			tradables = append(tradables, inst)
		}
	}

	movers := make([]Instrument, len(tradables))
	copy(movers, tradables)

	sort.SliceStable(movers, func(i, j int) bool {
		return math.Abs(movers[i].ChangePercent) > math.Abs(movers[j].ChangePercent)
	})

	if len(movers) > 5 {
		movers = movers[:5]
	}

	return Summary{
		Indices:           indices,
		TopMovers:         movers,
		SectorPerformance: sectorMeans(tradables),
	}
}

func sectorMeans(tradables []Instrument) []SectorPerformance {
	type agg struct {
		total float64
		count int
	}

	bySector := make(map[string]*agg)
	order := make([]string, 0)

	for _, inst := range tradables {
		if inst.Sector == "" || inst.Sector == SectorIndex {
			continue
		}

		a, seen := bySector[inst.Sector]
		if !seen {
			a = &agg{}
			bySector[inst.Sector] = a
			order = append(order, inst.Sector)
		}

		a.total += inst.ChangePercent
		a.count++
	}

	performance := make([]SectorPerformance, 0, len(order))

	for _, sector := range order {
		performance = append(performance, SectorPerformance{
			Sector:        sector,
			ChangePercent: query.Ratio(bySector[sector].total, float64(bySector[sector].count)),
		})
	}

	sort.SliceStable(performance, func(i, j int) bool {
		return performance[i].ChangePercent > performance[j].ChangePercent
	})

	return performance
}
