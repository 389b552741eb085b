package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ValidationError reports a malformed or out-of-range query parameter. The
// whole query fails; no partial results are produced.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Order is the sort direction of a query.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Directed applies the sort order to an ascending comparison result.
// Descending is the negation of the ascending comparator, never a second
// comparator, so the two directions can not drift apart.
func (o Order) Directed(cmp int) int {
	if o == OrderDesc {
		return -cmp
	}

	return cmp
}

// ParseOrder validates a sortOrder parameter. Empty defaults to descending,
// matching every list endpoint.
func ParseOrder(value string) (Order, error) {
	switch value {
	case "":
		return OrderDesc, nil
	case string(OrderAsc), string(OrderDesc):
		return Order(value), nil
	}

	return "", &ValidationError{Field: "sortOrder", Value: value, Reason: `must be "asc" or "desc"`}
}

// ParsePage validates a 1-indexed page number. Empty defaults to 1.
func ParsePage(value string) (int, error) {
	return parsePositiveInt("page", value, 1)
}

// MaxPageSize caps list responses so a single query can not return an
// unbounded payload.
const MaxPageSize = 100

// ParsePageSize validates a pageSize parameter against the given default.
func ParsePageSize(value string, def int) (int, error) {
	size, err := parsePositiveInt("pageSize", value, def)
	if err != nil {
		return 0, err
	}

	if size > MaxPageSize {
		return 0, &ValidationError{
			Field:  "pageSize",
			Value:  value,
			Reason: fmt.Sprintf("cannot exceed %d", MaxPageSize),
		}
	}

	return size, nil
}

func parsePositiveInt(field, value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: value, Reason: "must be a valid number"}
	}

	if n < 1 {
		return 0, &ValidationError{Field: field, Value: value, Reason: "must be greater than 0"}
	}

	return n, nil
}

// ParseLimit validates a top-N limit parameter. Empty defaults to def.
func ParseLimit(value string, def int) (int, error) {
	limit, err := parsePositiveInt("limit", value, def)
	if err != nil {
		return 0, err
	}

	if limit > MaxPageSize {
		return 0, &ValidationError{
			Field:  "limit",
			Value:  value,
			Reason: fmt.Sprintf("cannot exceed %d", MaxPageSize),
		}
	}

	return limit, nil
}

var dateLayouts = []string{time.RFC3339, time.DateOnly}

// ParseDate validates an optional date parameter. Dates before 1900 or more
// than ten years in the future are rejected as out of range.
func ParseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	var t time.Time

	var err error
	for _, layout := range dateLayouts {
		if t, err = time.Parse(layout, value); err == nil {
			break
		}
	}

	if err != nil {
		return nil, &ValidationError{Field: field, Value: value, Reason: "must be a valid date"}
	}

	min := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	max := time.Now().AddDate(10, 0, 0)

	if t.Before(min) || t.After(max) {
		return nil, &ValidationError{
			Field:  field,
			Value:  value,
			Reason: "must be between 1900 and 10 years from now",
		}
	}

	return &t, nil
}

// ParseEnum matches value against a closed set of allowed constants. Empty
// means the filter is absent and matches everything.
func ParseEnum[T ~string](field, value string, allowed []T) (*T, error) {
	if value == "" {
		return nil, nil
	}

	for _, a := range allowed {
		if string(a) == value {
			return &a, nil
		}
	}

	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}

	return nil, &ValidationError{
		Field:  field,
		Value:  value,
		Reason: "must be one of: " + strings.Join(names, ", "),
	}
}

// ParseBool validates an optional boolean flag. Empty means false.
func ParseBool(field, value string) (bool, error) {
	switch value {
	case "", "false":
		return false, nil
	case "true":
		return true, nil
	}

	return false, &ValidationError{Field: field, Value: value, Reason: `must be "true" or "false"`}
}

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.\-^]{1,10}$`)

// MaxSymbols bounds a comma-separated symbols parameter.
const MaxSymbols = 20

// ParseSymbols splits and validates a comma-separated symbol list.
func ParseSymbols(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}

	var symbols []string

	for _, s := range strings.Split(value, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		if !symbolPattern.MatchString(s) {
			return nil, &ValidationError{Field: "symbols", Value: s, Reason: "invalid symbol format"}
		}

		symbols = append(symbols, s)
	}

	if len(symbols) > MaxSymbols {
		return nil, &ValidationError{
			Field:  "symbols",
			Value:  value,
			Reason: fmt.Sprintf("cannot query more than %d symbols at once", MaxSymbols),
		}
	}

	return symbols, nil
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// SanitizeSearch strips markup from a free-text search parameter and caps its
// length. Search terms come from user input and end up in cache keys.
func SanitizeSearch(value string) string {
	cleaned := strings.TrimSpace(tagPattern.ReplaceAllString(value, ""))
	if len(cleaned) > 255 {
		cleaned = cleaned[:255]
	}

	return cleaned
}
