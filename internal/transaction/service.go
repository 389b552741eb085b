package transaction

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/advisordesk/advisordesk/internal/cache"
	"github.com/advisordesk/advisordesk/internal/query"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=transaction
type Source interface {
	Transactions(ctx context.Context) ([]Transaction, error)
}

// Service answers transaction queries against snapshot collections.
type Service struct {
	source Source
	cache  *cache.Cache
}

func NewService(source Source, c *cache.Cache) *Service {
	return &Service{source: source, cache: c}
}

// Params is the flat parameter set of a transaction query, as received from
// the caller. Empty fields are neutral.
type Params struct {
	Kind      string
	Status    string
	DateFrom  string
	DateTo    string
	Page      string
	PageSize  string
	SortBy    string
	SortOrder string
}

// Filter holds the validated predicate parameters. Nil fields always match;
// supplied fields are AND-combined.
type Filter struct {
	Kind   *Kind
	Status *Status
	From   *time.Time
	To     *time.Time
}

// Matches reports whether t passes every supplied filter parameter. The date
// range is inclusive on both bounds.
func (f Filter) Matches(t Transaction) bool {
	if f.Kind != nil && t.Kind != *f.Kind {
		return false
	}

	if f.Status != nil && t.Status != *f.Status {
		return false
	}

	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}

	if f.To != nil && t.Date.After(*f.To) {
		return false
	}

	return true
}

// SortField is the closed set of transaction sort keys.
type SortField string

const (
	SortByDate    SortField = "date"
	SortByTotal   SortField = "total"
	SortByCompany SortField = "company"
)

func sortFields() []SortField {
	return []SortField{SortByDate, SortByTotal, SortByCompany}
}

type resolved struct {
	filter   Filter
	page     int
	pageSize int
	sortBy   SortField
	order    query.Order
}

func parseParams(p Params) (resolved, error) {
	var r resolved

	var err error

	if r.filter.Kind, err = query.ParseEnum("type", p.Kind, Kinds()); err != nil {
		return r, err
	}

	if r.filter.Status, err = query.ParseEnum("status", p.Status, Statuses()); err != nil {
		return r, err
	}

	if r.filter.From, err = query.ParseDate("startDate", p.DateFrom); err != nil {
		return r, err
	}

	if r.filter.To, err = query.ParseDate("endDate", p.DateTo); err != nil {
		return r, err
	}

	if r.page, err = query.ParsePage(p.Page); err != nil {
		return r, err
	}

	if r.pageSize, err = query.ParsePageSize(p.PageSize, 10); err != nil {
		return r, err
	}

	sortBy, err := query.ParseEnum("sortBy", p.SortBy, sortFields())
	if err != nil {
		return r, err
	}

	r.sortBy = SortByDate
	if sortBy != nil {
		r.sortBy = *sortBy
	}

	if r.order, err = query.ParseOrder(p.SortOrder); err != nil {
		return r, err
	}

	return r, nil
}

func (r resolved) cacheKey() string {
	v := url.Values{}
	v.Set("page", fmt.Sprint(r.page))
	v.Set("pageSize", fmt.Sprint(r.pageSize))
	v.Set("sortBy", string(r.sortBy))
	v.Set("sortOrder", string(r.order))

	if r.filter.Kind != nil {
		v.Set("type", string(*r.filter.Kind))
	}

	if r.filter.Status != nil {
		v.Set("status", string(*r.filter.Status))
	}

	if r.filter.From != nil {
		v.Set("startDate", r.filter.From.Format(time.RFC3339))
	}

	if r.filter.To != nil {
		v.Set("endDate", r.filter.To.Format(time.RFC3339))
	}

	return cache.Key("transactions", v)
}

// Query filters, sorts and paginates the transaction snapshot. Identical
// queries inside the cache TTL are served without refetching the snapshot.
func (s *Service) Query(ctx context.Context, p Params) (query.Page[Transaction], error) {
	r, err := parseParams(p)
	if err != nil {
		return query.Page[Transaction]{}, err
	}

	key := r.cacheKey()
	if page, ok := cache.Lookup[query.Page[Transaction]](s.cache, key); ok {
		return page, nil
	}

	snapshot, err := s.source.Transactions(ctx)
	if err != nil {
		return query.Page[Transaction]{}, fmt.Errorf("fetching transactions: %w", err)
	}

	matched := make([]Transaction, 0, len(snapshot))

	for _, t := range snapshot {
		if r.filter.Matches(t) {
			matched = append(matched, t)
		}
	}

	sortTransactions(matched, r.sortBy, r.order)

	page := query.Paginate(matched, r.page, r.pageSize)
	s.cache.Set(key, page)

	return page, nil
}

// sortTransactions orders txs by the given field. The sort is stable so equal
// keys keep their snapshot order and repeated queries stay deterministic.
func sortTransactions(txs []Transaction, field SortField, order query.Order) {
	col := query.Collator()

	sort.SliceStable(txs, func(i, j int) bool {
		var cmp int

		switch field {
		case SortByDate:
			cmp = txs[i].Date.Compare(txs[j].Date)
		case SortByTotal:
			cmp = compareFloats(txs[i].Total, txs[j].Total)
		case SortByCompany:
			cmp = col.CompareString(txs[i].Company, txs[j].Company)
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
