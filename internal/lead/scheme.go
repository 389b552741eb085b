package lead

import "strings"

// SchemeMatcher decides whether a free-text scheme query matches a lead's
// scheme tag. The default implementation is deliberately lossy: it trades
// false positives for recall, so advisors searching a fund family see every
// plausible lead. Swap in a real fuzzy-matching implementation here without
// touching the query pipeline.
type SchemeMatcher interface {
	Matches(query, scheme string) bool
}

// AliasMatcher matches by substring in either direction, by brand (the first
// word of the query), and through a static table mapping canonical short
// forms to their variant spellings.
type AliasMatcher struct {
	aliases map[string][]string
}

// NewAliasMatcher builds the default matcher with the known scheme aliases.
func NewAliasMatcher() *AliasMatcher {
	return &AliasMatcher{
		aliases: map[string][]string{
			"bluechip": {"balanced", "blue chip"},
			"midcap":   {"mid-cap", "mid cap"},
			"smallcap": {"small-cap", "small cap"},
		},
	}
}

// Matches reports whether query and scheme refer to the same product.
// Matching is case-insensitive and alias lookups run in both directions.
func (m *AliasMatcher) Matches(query, scheme string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	s := strings.ToLower(scheme)

	if q == "" || s == "" {
		return false
	}

	if strings.Contains(s, q) || strings.Contains(q, s) {
		return true
	}

	if brand, _, _ := strings.Cut(q, " "); brand != "" && strings.Contains(s, brand) {
		return true
	}

	for canonical, aliases := range m.aliases {
		if strings.Contains(q, canonical) && containsAny(s, aliases) {
			return true
		}

		if containsAny(q, aliases) && strings.Contains(s, canonical) {
			return true
		}
	}

	return false
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
