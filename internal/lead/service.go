package lead

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/advisordesk/advisordesk/internal/cache"
	"github.com/advisordesk/advisordesk/internal/query"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=lead
type Source interface {
	Leads(ctx context.Context) ([]Lead, error)
}

// Service answers lead queries and funnel analytics against snapshots.
type Service struct {
	source  Source
	cache   *cache.Cache
	matcher SchemeMatcher
}

func NewService(source Source, c *cache.Cache, matcher SchemeMatcher) *Service {
	if matcher == nil {
		matcher = NewAliasMatcher()
	}

	return &Service{source: source, cache: c, matcher: matcher}
}

// Params is the flat parameter set of a lead query.
type Params struct {
	Status     string
	Source     string
	AssignedTo string
	DateFrom   string
	DateTo     string
	Scheme     string
	Search     string
	Page       string
	PageSize   string
	SortBy     string
	SortOrder  string
}

// Filter holds the validated predicate parameters. All supplied parameters
// are AND-combined; the date range applies to CreatedDate, inclusive on both
// bounds.
type Filter struct {
	Status     *Status
	Source     *Channel
	AssignedTo string
	From       *time.Time
	To         *time.Time
	Scheme     string
	Search     string
}

// Matches reports whether l passes every supplied parameter, using matcher
// for the fuzzy scheme comparison.
func (f Filter) Matches(l Lead, matcher SchemeMatcher) bool {
	if f.Status != nil && l.Status != *f.Status {
		return false
	}

	if f.Source != nil && l.Source != *f.Source {
		return false
	}

	if f.AssignedTo != "" && l.AssignedTo != f.AssignedTo {
		return false
	}

	if f.From != nil && l.CreatedDate.Before(*f.From) {
		return false
	}

	if f.To != nil && l.CreatedDate.After(*f.To) {
		return false
	}

	if f.Scheme != "" && !matcher.Matches(f.Scheme, l.Scheme) {
		return false
	}

	if f.Search != "" && !matchesSearch(l, f.Search) {
		return false
	}

	return true
}

// matchesSearch checks the free-text query against the lead's text fields.
// Company, contact name and email compare case-insensitively; the phone
// number is a raw substring match since digits have no case.
func matchesSearch(l Lead, search string) bool {
	lowered := strings.ToLower(search)

	if strings.Contains(strings.ToLower(l.Company), lowered) ||
		strings.Contains(strings.ToLower(l.ContactName), lowered) ||
		strings.Contains(strings.ToLower(l.ContactEmail), lowered) {
		return true
	}

	return l.ContactPhone != "" && strings.Contains(l.ContactPhone, search)
}

// SortField is the closed set of lead sort keys.
type SortField string

const (
	SortByCreated       SortField = "createdDate"
	SortByLastContacted SortField = "lastContactedDate"
	SortByValue         SortField = "potentialValue"
	SortByCompany       SortField = "company"
)

func sortFields() []SortField {
	return []SortField{SortByCreated, SortByLastContacted, SortByValue, SortByCompany}
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

	if r.filter.Status, err = query.ParseEnum("status", p.Status, Statuses()); err != nil {
		return r, err
	}

	if r.filter.Source, err = query.ParseEnum("source", p.Source, Channels()); err != nil {
		return r, err
	}

	if r.filter.From, err = query.ParseDate("startDate", p.DateFrom); err != nil {
		return r, err
	}

	if r.filter.To, err = query.ParseDate("endDate", p.DateTo); err != nil {
		return r, err
	}

	r.filter.AssignedTo = query.SanitizeSearch(p.AssignedTo)
	r.filter.Scheme = query.SanitizeSearch(p.Scheme)
	r.filter.Search = query.SanitizeSearch(p.Search)

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

	r.sortBy = SortByCreated
	if sortBy != nil {
		r.sortBy = *sortBy
	}

	if r.order, err = query.ParseOrder(p.SortOrder); err != nil {
		return r, err
	}

	return r, nil
}

func (r resolved) values() url.Values {
	v := url.Values{}

	if r.filter.Status != nil {
		v.Set("status", string(*r.filter.Status))
	}

	if r.filter.Source != nil {
		v.Set("source", string(*r.filter.Source))
	}

	if r.filter.AssignedTo != "" {
		v.Set("assignedTo", r.filter.AssignedTo)
	}

	if r.filter.From != nil {
		v.Set("startDate", r.filter.From.Format(time.RFC3339))
	}

	if r.filter.To != nil {
		v.Set("endDate", r.filter.To.Format(time.RFC3339))
	}

	if r.filter.Scheme != "" {
		v.Set("scheme", r.filter.Scheme)
	}

	if r.filter.Search != "" {
		v.Set("search", r.filter.Search)
	}

	return v
}

// Query filters, sorts and paginates the lead snapshot.
func (s *Service) Query(ctx context.Context, p Params) (query.Page[Lead], error) {
	r, err := parseParams(p)
	if err != nil {
		return query.Page[Lead]{}, err
	}

	v := r.values()
	v.Set("page", fmt.Sprint(r.page))
	v.Set("pageSize", fmt.Sprint(r.pageSize))
	v.Set("sortBy", string(r.sortBy))
	v.Set("sortOrder", string(r.order))

	key := cache.Key("leads", v)
	if page, ok := cache.Lookup[query.Page[Lead]](s.cache, key); ok {
		return page, nil
	}

	matched, err := s.fetch(ctx, r.filter)
	if err != nil {
		return query.Page[Lead]{}, err
	}

	sortLeads(matched, r.sortBy, r.order)

	page := query.Paginate(matched, r.page, r.pageSize)
	s.cache.Set(key, page)

	return page, nil
}

func (s *Service) fetch(ctx context.Context, f Filter) ([]Lead, error) {
	snapshot, err := s.source.Leads(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching leads: %w", err)
	}

	matched := make([]Lead, 0, len(snapshot))

	for _, l := range snapshot {
		if f.Matches(l, s.matcher) {
			matched = append(matched, l)
		}
	}

	return matched, nil
}

func sortLeads(leads []Lead, field SortField, order query.Order) {
	col := query.Collator()

	sort.SliceStable(leads, func(i, j int) bool {
		var cmp int

		switch field {
		case SortByCreated:
			cmp = leads[i].CreatedDate.Compare(leads[j].CreatedDate)
		case SortByLastContacted:
			cmp = leads[i].LastContactedDate.Compare(leads[j].LastContactedDate)
		case SortByValue:
			cmp = compareFloats(leads[i].PotentialValue, leads[j].PotentialValue)
		case SortByCompany:
			cmp = col.CompareString(leads[i].Company, leads[j].Company)
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
