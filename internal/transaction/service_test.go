package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/advisordesk/advisordesk/internal/cache"
	"github.com/advisordesk/advisordesk/internal/query"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func snapshot() []transaction.Transaction {
	return []transaction.Transaction{
		{ID: "t1", Kind: transaction.KindBuy, Company: "Acme Corp", Total: 500, Date: day(1), Status: transaction.StatusCompleted},
		{ID: "t2", Kind: transaction.KindSell, Company: "Beta Ltd", Total: 300, Date: day(3), Status: transaction.StatusCompleted},
		{ID: "t3", Kind: transaction.KindDeposit, Total: 1000, Date: day(5), Status: transaction.StatusCompleted},
		{ID: "t4", Kind: transaction.KindBuy, Company: "acme corp", Total: 200, Date: day(7), Status: transaction.StatusPending},
		{ID: "t5", Kind: transaction.KindWithdrawal, Total: 400, Date: day(9), Status: transaction.StatusCompleted},
	}
}

func newService(t *testing.T, txs []transaction.Transaction, fetches int) *transaction.Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	src := transaction.NewMockSource(ctrl)
	src.EXPECT().Transactions(gomock.Any()).Return(txs, nil).Times(fetches)

	return transaction.NewService(src, cache.New(time.Minute))
}

func ids(txs []transaction.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}

	return out
}

func TestService_Query(t *testing.T) {
	type testCase struct {
		name    string
		params  transaction.Params
		wantIDs []string
	}

	tests := []testCase{
		{
			name:    "DefaultSortIsDateDesc",
			params:  transaction.Params{},
			wantIDs: []string{"t5", "t4", "t3", "t2", "t1"},
		},
		{
			name:    "FilterByKind",
			params:  transaction.Params{Kind: "Buy"},
			wantIDs: []string{"t4", "t1"},
		},
		{
			name:    "FilterByStatus",
			params:  transaction.Params{Status: "Pending"},
			wantIDs: []string{"t4"},
		},
		{
			name:    "DateRangeInclusive",
			params:  transaction.Params{DateFrom: "2024-05-03", DateTo: "2024-05-07"},
			wantIDs: []string{"t4", "t3", "t2"},
		},
		{
			name:    "SortByTotalAsc",
			params:  transaction.Params{SortBy: "total", SortOrder: "asc"},
			wantIDs: []string{"t4", "t2", "t5", "t1", "t3"},
		},
		{
			name:    "Pagination",
			params:  transaction.Params{PageSize: "2", Page: "2"},
			wantIDs: []string{"t3", "t2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, snapshot(), 1)

			page, err := svc.Query(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(page.Items))
		})
	}
}

func TestService_Query_CompanySortIsCaseInsensitive(t *testing.T) {
	svc := newService(t, snapshot(), 1)

	page, err := svc.Query(context.Background(), transaction.Params{SortBy: "company", SortOrder: "asc"})
	require.NoError(t, err)

	// Locale collation groups "Acme Corp" and "acme corp" together ahead
	// of "Beta Ltd"; empty company names sort first.
	require.Len(t, page.Items, 5)
	assert.Equal(t, "Beta Ltd", page.Items[4].Company)
}

func TestService_Query_ValidationFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := transaction.NewMockSource(ctrl)
	// The snapshot must never be fetched for an invalid query.
	svc := transaction.NewService(src, cache.New(time.Minute))

	type testCase struct {
		name      string
		params    transaction.Params
		wantField string
	}

	tests := []testCase{
		{name: "BadKind", params: transaction.Params{Kind: "Steal"}, wantField: "type"},
		{name: "BadStatus", params: transaction.Params{Status: "Done"}, wantField: "status"},
		{name: "BadDate", params: transaction.Params{DateFrom: "soon"}, wantField: "startDate"},
		{name: "BadPage", params: transaction.Params{Page: "0"}, wantField: "page"},
		{name: "BadPageSize", params: transaction.Params{PageSize: "1000"}, wantField: "pageSize"},
		{name: "BadSortField", params: transaction.Params{SortBy: "fees"}, wantField: "sortBy"},
		{name: "BadSortOrder", params: transaction.Params{SortOrder: "up"}, wantField: "sortOrder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Query(context.Background(), tt.params)

			var verr *query.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestService_Query_CachesResult(t *testing.T) {
	// One expected fetch; the second identical query must hit the cache.
	svc := newService(t, snapshot(), 1)

	first, err := svc.Query(context.Background(), transaction.Params{Status: "Completed"})
	require.NoError(t, err)

	second, err := svc.Query(context.Background(), transaction.Params{Status: "Completed"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_Query_DistinctParamsMissCache(t *testing.T) {
	svc := newService(t, snapshot(), 2)

	_, err := svc.Query(context.Background(), transaction.Params{Status: "Completed"})
	require.NoError(t, err)

	_, err = svc.Query(context.Background(), transaction.Params{Status: "Pending"})
	require.NoError(t, err)
}

func TestFlows(t *testing.T) {
	totals := transaction.Flows(snapshot())

	// t4 is pending and does not count. Inflows: t2 (Sell 300) and t3
	// (Deposit 1000). Outflows: t1 (Buy 500) and t5 (Withdrawal 400).
	assert.Equal(t, 1300.0, totals.Inflow)
	assert.Equal(t, 900.0, totals.Outflow)
	assert.Equal(t, 2, totals.InflowCount)
	assert.Equal(t, 2, totals.OutflowCount)
	assert.Equal(t, 400.0, totals.NetFlow)
}

func TestFlows_OrderIndependent(t *testing.T) {
	txs := snapshot()
	before := transaction.Flows(txs)

	reversed := make([]transaction.Transaction, 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		reversed = append(reversed, txs[i])
	}

	assert.Equal(t, before, transaction.Flows(reversed))
}

func TestService_FlowSummary_AppliesFilter(t *testing.T) {
	svc := newService(t, snapshot(), 1)

	totals, err := svc.FlowSummary(context.Background(), transaction.Params{DateFrom: "2024-05-05"})
	require.NoError(t, err)

	// In range: t3 (Deposit 1000, inflow) and t5 (Withdrawal 400,
	// outflow); t4 is pending.
	assert.Equal(t, 1000.0, totals.Inflow)
	assert.Equal(t, 400.0, totals.Outflow)
	assert.Equal(t, 600.0, totals.NetFlow)
}
