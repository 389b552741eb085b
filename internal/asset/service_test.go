package asset_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/advisordesk/advisordesk/internal/asset"
	"github.com/advisordesk/advisordesk/internal/cache"
	"github.com/advisordesk/advisordesk/internal/query"
)

func holdings() []asset.Asset {
	return []asset.Asset{
		{
			ID: "a1", Symbol: "ACME", Name: "Acme Corp", Category: asset.CategoryStock,
			TotalValue: 600, CostBasis: 500, UnrealizedGain: 100, UnrealizedGainPercent: 20,
			Performance: asset.Performance{Day: 1.5, Year: 9.8},
		},
		{
			ID: "a2", Symbol: "GOVT", Name: "Gilt Fund", Category: asset.CategoryBond,
			TotalValue: 400, CostBasis: 380, UnrealizedGain: 20, UnrealizedGainPercent: 5.26,
			Performance: asset.Performance{Day: -0.4, Year: 4.1},
		},
		{
			ID: "a3", Symbol: "NIFTYBEES", Name: "Index ETF", Category: asset.CategoryETF,
			TotalValue: 1000, CostBasis: 900, UnrealizedGain: 100, UnrealizedGainPercent: 11.11,
			Performance: asset.Performance{Day: 2.25, Year: 16.4},
		},
	}
}

func newService(t *testing.T, assets []asset.Asset, fetches int) *asset.Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	src := asset.NewMockSource(ctrl)
	src.EXPECT().Assets(gomock.Any()).Return(assets, nil).Times(fetches)

	return asset.NewService(src, cache.New(time.Minute))
}

func TestService_Query(t *testing.T) {
	type testCase struct {
		name    string
		params  asset.Params
		wantIDs []string
	}

	tests := []testCase{
		{
			name:    "DefaultSortIsTotalValueDesc",
			params:  asset.Params{},
			wantIDs: []string{"a3", "a1", "a2"},
		},
		{
			name:    "SortByGainPercentAsc",
			params:  asset.Params{SortBy: "unrealizedGainPercent", SortOrder: "asc"},
			wantIDs: []string{"a2", "a3", "a1"},
		},
		{
			name:    "SortByNameAsc",
			params:  asset.Params{SortBy: "name", SortOrder: "asc"},
			wantIDs: []string{"a1", "a2", "a3"},
		},
		{
			name:    "SortByYearPerformanceDesc",
			params:  asset.Params{SortBy: "performance"},
			wantIDs: []string{"a3", "a1", "a2"},
		},
		{
			name:    "CategoryFilter",
			params:  asset.Params{Category: "Bond"},
			wantIDs: []string{"a2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, holdings(), 1)

			page, err := svc.Query(context.Background(), tt.params)
			require.NoError(t, err)

			got := make([]string, len(page.Items))
			for i, a := range page.Items {
				got[i] = a.ID
			}

			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestService_Query_InvalidCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := asset.NewService(asset.NewMockSource(ctrl), cache.New(time.Minute))

	_, err := svc.Query(context.Background(), asset.Params{Category: "Stamps"})

	var verr *query.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestService_Query_LeavesSnapshotOrderIntact(t *testing.T) {
	snapshot := holdings()

	ctrl := gomock.NewController(t)
	src := asset.NewMockSource(ctrl)
	src.EXPECT().Assets(gomock.Any()).Return(snapshot, nil)

	svc := asset.NewService(src, cache.New(time.Minute))

	page, err := svc.Query(context.Background(), asset.Params{})
	require.NoError(t, err)
	require.Equal(t, "a3", page.Items[0].ID)

	// The sort must run on a copy, not on the slice the source handed over.
	assert.Equal(t, "a1", snapshot[0].ID)
	assert.Equal(t, "a2", snapshot[1].ID)
	assert.Equal(t, "a3", snapshot[2].ID)
}

func TestSummarize(t *testing.T) {
	s := asset.Summarize(holdings())

	assert.Equal(t, 2000.0, s.TotalValue)
	assert.Equal(t, 1780.0, s.TotalCostBasis)
	assert.Equal(t, 220.0, s.TotalUnrealizedGain)
	assert.InDelta(t, 12.36, s.TotalUnrealizedGainPercent, 0.01)

	// 600×1.5% + 400×(−0.4%) + 1000×2.25% = 9 − 1.6 + 22.5.
	assert.InDelta(t, 29.9, s.TodayGain, 1e-9)

	require.Len(t, s.AssetAllocation, 3)
	assert.Equal(t, asset.CategoryETF, s.AssetAllocation[0].Category)
	assert.Equal(t, 50.0, s.AssetAllocation[0].Percentage)
	assert.Equal(t, asset.CategoryStock, s.AssetAllocation[1].Category)
	assert.Equal(t, 30.0, s.AssetAllocation[1].Percentage)
	assert.Equal(t, asset.CategoryBond, s.AssetAllocation[2].Category)
	assert.Equal(t, 20.0, s.AssetAllocation[2].Percentage)
}

func TestSummarize_Empty(t *testing.T) {
	s := asset.Summarize(nil)

	assert.Zero(t, s.TotalValue)
	assert.Zero(t, s.TotalUnrealizedGainPercent)
	assert.Zero(t, s.TodayGainPercent)
	assert.Empty(t, s.AssetAllocation)
}

func TestSummarize_ZeroCostBasis(t *testing.T) {
	s := asset.Summarize([]asset.Asset{{Category: asset.CategoryCash, TotalValue: 100}})

	assert.Equal(t, 100.0, s.TotalUnrealizedGain)
	assert.Zero(t, s.TotalUnrealizedGainPercent, "zero cost basis must not divide")
}

func TestService_Summary_Cached(t *testing.T) {
	svc := newService(t, holdings(), 1)

	first, err := svc.Summary(context.Background(), asset.Params{})
	require.NoError(t, err)

	second, err := svc.Summary(context.Background(), asset.Params{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTopPerformers(t *testing.T) {
	top := asset.TopPerformers(holdings(), 2)

	require.Len(t, top, 2)
	assert.Equal(t, "a3", top[0].ID)
	assert.Equal(t, "a1", top[1].ID)
}

func TestTopPerformers_LimitLargerThanInput(t *testing.T) {
	assert.Len(t, asset.TopPerformers(holdings(), 10), 3)
}

func TestDayChange(t *testing.T) {
	assets := []asset.Asset{
		// Previous value 1000, so today's change is +10.
		{TotalValue: 1010, Performance: asset.Performance{Day: 1}},
		// Previous value 500, change is −5.
		{TotalValue: 495, Performance: asset.Performance{Day: -1}},
	}

	change, percent := asset.DayChange(assets)

	assert.InDelta(t, 5.0, change, 1e-9)
	assert.InDelta(t, 0.333, percent, 0.001)
}

func TestService_DayChange(t *testing.T) {
	svc := newService(t, holdings(), 1)

	totals, err := svc.DayChange(context.Background(), asset.Params{})
	require.NoError(t, err)

	change, percent := asset.DayChange(holdings())
	assert.InDelta(t, change, totals.Change, 1e-9)
	assert.InDelta(t, percent, totals.ChangePercent, 1e-9)
}

func TestService_DayChange_CategoryFilter(t *testing.T) {
	svc := newService(t, holdings(), 1)

	totals, err := svc.DayChange(context.Background(), asset.Params{Category: "Bond"})
	require.NoError(t, err)

	// Only a2: previous value 400/0.996, a small loss.
	assert.Negative(t, totals.Change)
	assert.InDelta(t, -0.4, totals.ChangePercent, 0.001)
}

func TestDayChange_TotalLossContributesNothing(t *testing.T) {
	assets := []asset.Asset{
		{TotalValue: 0, Performance: asset.Performance{Day: -100}},
		{TotalValue: 202, Performance: asset.Performance{Day: 1}},
	}

	change, _ := asset.DayChange(assets)

	assert.InDelta(t, 2.0, change, 1e-9)
}
