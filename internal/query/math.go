package query

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ratio divides num by den, resolving a zero denominator to zero instead of
// Inf/NaN. Every summary in the system routes its divisions through here so
// empty collections reduce to zeroed structures.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	return num / den
}

// Percent is Ratio expressed as a percentage.
func Percent(num, den float64) float64 {
	return Ratio(num, den) * 100
}

// Collator returns a locale-aware collator for string sort keys. Collators
// buffer state internally, so callers create one per sort and must not share
// it across goroutines.
func Collator() *collate.Collator {
	return collate.New(language.English)
}
