package asset

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/advisordesk/advisordesk/internal/cache"
	"github.com/advisordesk/advisordesk/internal/query"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=asset
type Source interface {
	Assets(ctx context.Context) ([]Asset, error)
}

// Service answers portfolio queries against asset snapshots.
type Service struct {
	source Source
	cache  *cache.Cache
}

func NewService(source Source, c *cache.Cache) *Service {
	return &Service{source: source, cache: c}
}

// Params is the flat parameter set of an asset query.
type Params struct {
	Category  string
	Page      string
	PageSize  string
	SortBy    string
	SortOrder string
}

// SortField is the closed set of asset sort keys.
type SortField string

const (
	SortByTotalValue  SortField = "totalValue"
	SortByGainPercent SortField = "unrealizedGainPercent"
	SortByAllocation  SortField = "allocation"
	SortByName        SortField = "name"
	SortByPerformance SortField = "performance"
)

func sortFields() []SortField {
	return []SortField{
		SortByTotalValue, SortByGainPercent, SortByAllocation,
		SortByName, SortByPerformance,
	}
}

type resolved struct {
	category *Category
	page     int
	pageSize int
	sortBy   SortField
	order    query.Order
}

func parseParams(p Params) (resolved, error) {
	var r resolved

	var err error

	if r.category, err = query.ParseEnum("category", p.Category, Categories()); err != nil {
		return r, err
	}

	if r.page, err = query.ParsePage(p.Page); err != nil {
		return r, err
	}

	if r.pageSize, err = query.ParsePageSize(p.PageSize, 20); err != nil {
		return r, err
	}

	sortBy, err := query.ParseEnum("sortBy", p.SortBy, sortFields())
	if err != nil {
		return r, err
	}

	r.sortBy = SortByTotalValue
	if sortBy != nil {
		r.sortBy = *sortBy
	}

	if r.order, err = query.ParseOrder(p.SortOrder); err != nil {
		return r, err
	}

	return r, nil
}

func (r resolved) cacheKey(op string) string {
	v := url.Values{}
	v.Set("page", fmt.Sprint(r.page))
	v.Set("pageSize", fmt.Sprint(r.pageSize))
	v.Set("sortBy", string(r.sortBy))
	v.Set("sortOrder", string(r.order))

	if r.category != nil {
		v.Set("category", string(*r.category))
	}

	return cache.Key(op, v)
}

// Query filters, sorts and paginates the asset snapshot.
func (s *Service) Query(ctx context.Context, p Params) (query.Page[Asset], error) {
	r, err := parseParams(p)
	if err != nil {
		return query.Page[Asset]{}, err
	}

	key := r.cacheKey("assets")
	if page, ok := cache.Lookup[query.Page[Asset]](s.cache, key); ok {
		return page, nil
	}

	matched, err := s.fetch(ctx, r.category)
	if err != nil {
		return query.Page[Asset]{}, err
	}

	sortAssets(matched, r.sortBy, r.order)

	page := query.Paginate(matched, r.page, r.pageSize)
	s.cache.Set(key, page)

	return page, nil
}

func (s *Service) fetch(ctx context.Context, category *Category) ([]Asset, error) {
	snapshot, err := s.source.Assets(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching assets: %w", err)
	}

	// Copy even when unfiltered: callers sort the result in place and the
	// snapshot belongs to the source.
	if category == nil {
		return append([]Asset(nil), snapshot...), nil
	}

	matched := make([]Asset, 0, len(snapshot))

	for _, a := range snapshot {
		if a.Category == *category {
			matched = append(matched, a)
		}
	}

	return matched, nil
}

func sortAssets(assets []Asset, field SortField, order query.Order) {
	col := query.Collator()

	sort.SliceStable(assets, func(i, j int) bool {
		var cmp int

		switch field {
		case SortByTotalValue:
			cmp = compareFloats(assets[i].TotalValue, assets[j].TotalValue)
		case SortByGainPercent:
			cmp = compareFloats(assets[i].UnrealizedGainPercent, assets[j].UnrealizedGainPercent)
		case SortByAllocation:
			cmp = compareFloats(assets[i].Allocation, assets[j].Allocation)
		case SortByName:
			cmp = col.CompareString(assets[i].Name, assets[j].Name)
		case SortByPerformance:
			cmp = compareFloats(assets[i].Performance.Year, assets[j].Performance.Year)
		}

		return order.Directed(cmp) < 0
	})
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}
