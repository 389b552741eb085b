package transaction_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/advisordesk/advisordesk/internal/cache"
	txHandler "github.com/advisordesk/advisordesk/internal/http/transaction"
	"github.com/advisordesk/advisordesk/internal/query"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

func newServer(t *testing.T, txs []transaction.Transaction) *httptest.Server {
	t.Helper()

	ctrl := gomock.NewController(t)
	src := transaction.NewMockSource(ctrl)
	src.EXPECT().Transactions(gomock.Any()).Return(txs, nil).AnyTimes()

	svc := transaction.NewService(src, cache.New(time.Minute))

	router := chi.NewRouter()
	router.Route("/transactions", txHandler.NewHandler(svc).Routes)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

type listEnvelope struct {
	Success bool                                 `json:"success"`
	Data    query.Page[transaction.Transaction] `json:"data"`
	Error   *struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	} `json:"error"`
}

func get(t *testing.T, url string) (*http.Response, listEnvelope) {
	t.Helper()

	res, err := http.Get(url)
	require.NoError(t, err)

	defer res.Body.Close()

	var env listEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))

	return res, env
}

func fixture() []transaction.Transaction {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	return []transaction.Transaction{
		{ID: "t1", Kind: transaction.KindBuy, Total: 500, Date: date, Status: transaction.StatusCompleted},
		{ID: "t2", Kind: transaction.KindSell, Total: 300, Date: date.AddDate(0, 0, 1), Status: transaction.StatusPending},
	}
}

func TestHandler_List(t *testing.T) {
	server := newServer(t, fixture())

	res, env := get(t, server.URL+"/transactions")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Data.Total)
	require.Len(t, env.Data.Items, 2)
	assert.Equal(t, "t2", env.Data.Items[0].ID, "newest first by default")
}

func TestHandler_List_Filtered(t *testing.T) {
	server := newServer(t, fixture())

	_, env := get(t, server.URL+"/transactions?type=Buy")

	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, "t1", env.Data.Items[0].ID)
}

func TestHandler_List_DateRange(t *testing.T) {
	server := newServer(t, fixture())

	_, env := get(t, server.URL+"/transactions?startDate=2024-05-02")

	assert.Equal(t, 1, env.Data.Total)
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, "t2", env.Data.Items[0].ID)
}

func TestHandler_List_BadStartDate(t *testing.T) {
	server := newServer(t, fixture())

	res, env := get(t, server.URL+"/transactions?startDate=garbage")

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "startDate", env.Error.Field)
}

func TestHandler_List_ValidationError(t *testing.T) {
	server := newServer(t, fixture())

	res, env := get(t, server.URL+"/transactions?pageSize=9999")

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "pageSize", env.Error.Field)
}

func TestHandler_Flows(t *testing.T) {
	server := newServer(t, fixture())

	res, err := http.Get(server.URL + "/transactions/flows")
	require.NoError(t, err)

	defer res.Body.Close()

	var env struct {
		Success bool                   `json:"success"`
		Data    transaction.FlowTotals `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))

	assert.True(t, env.Success)
	// Only t1 is completed; a Buy is an outflow.
	assert.Equal(t, 500.0, env.Data.Outflow)
	assert.Zero(t, env.Data.Inflow)
}
