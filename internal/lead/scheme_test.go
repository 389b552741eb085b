package lead_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/advisordesk/advisordesk/internal/lead"
)

func TestAliasMatcher(t *testing.T) {
	m := lead.NewAliasMatcher()

	type testCase struct {
		name   string
		query  string
		scheme string
		want   bool
	}

	tests := []testCase{
		{
			name:   "ExactSubstring",
			query:  "blue chip",
			scheme: "ICICI Blue Chip Fund",
			want:   true,
		},
		{
			name:   "CaseInsensitive",
			query:  "BLUE CHIP",
			scheme: "icici blue chip fund",
			want:   true,
		},
		{
			name:   "SchemeInsideQuery",
			query:  "HDFC Balanced Advantage Fund Direct Growth",
			scheme: "balanced advantage",
			want:   true,
		},
		{
			name:   "BrandOnly",
			query:  "HDFC Top 100",
			scheme: "HDFC Flexi Cap Fund",
			want:   true,
		},
		{
			name:   "AliasCanonicalToVariant",
			query:  "bluechip",
			scheme: "HDFC Balanced Fund",
			want:   true,
		},
		{
			name:   "AliasVariantToCanonical",
			query:  "mid-cap equity",
			scheme: "Axis Midcap Opportunities",
			want:   true,
		},
		{
			name:   "NoOverlap",
			query:  "bluechip",
			scheme: "Small Cap Discovery Fund",
			want:   false,
		},
		{
			name:   "EmptyQuery",
			query:  "",
			scheme: "Anything",
			want:   false,
		},
		{
			name:   "EmptyScheme",
			query:  "anything",
			scheme: "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Matches(tt.query, tt.scheme))
		})
	}
}
