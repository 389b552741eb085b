package lead_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/advisordesk/advisordesk/internal/cache"
	leadHandler "github.com/advisordesk/advisordesk/internal/http/lead"
	"github.com/advisordesk/advisordesk/internal/lead"
	"github.com/advisordesk/advisordesk/internal/source"
)

func fixture() []lead.Lead {
	created := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	return []lead.Lead{
		{ID: "l1", Company: "Sharma Holdings", Status: lead.StatusClosedWon, Source: lead.ChannelWebsite, PotentialValue: 50000, CreatedDate: created},
		{ID: "l2", Company: "Gupta Traders", Status: lead.StatusNew, Source: lead.ChannelReferral, PotentialValue: 120000, CreatedDate: created.AddDate(0, 0, 1)},
	}
}

func newServer(t *testing.T, leads []lead.Lead, err error) *httptest.Server {
	t.Helper()

	ctrl := gomock.NewController(t)
	src := lead.NewMockSource(ctrl)
	src.EXPECT().Leads(gomock.Any()).Return(leads, err).AnyTimes()

	svc := lead.NewService(src, cache.New(time.Minute), nil)

	router := chi.NewRouter()
	router.Route("/leads", leadHandler.NewHandler(svc).Routes)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func TestHandler_List(t *testing.T) {
	server := newServer(t, fixture(), nil)

	res, err := http.Get(server.URL + "/leads")
	require.NoError(t, err)

	defer res.Body.Close()

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Items []lead.Lead `json:"data"`
			Total int         `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Data.Total)
}

func TestHandler_List_AnalyticsToggle(t *testing.T) {
	server := newServer(t, fixture(), nil)

	res, err := http.Get(server.URL + "/leads?analytics=true")
	require.NoError(t, err)

	defer res.Body.Close()

	var env struct {
		Success bool           `json:"success"`
		Data    lead.Analytics `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))

	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Data.TotalLeads)
	assert.Equal(t, 50.0, env.Data.ConversionRate)
}

func TestHandler_Trend_BadPeriod(t *testing.T) {
	server := newServer(t, fixture(), nil)

	res, err := http.Get(server.URL + "/leads/trend?period=hourly")
	require.NoError(t, err)

	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestHandler_SourceUnavailable(t *testing.T) {
	server := newServer(t, nil, fmt.Errorf("%w: missing leads.json", source.ErrUnavailable))

	res, err := http.Get(server.URL + "/leads")
	require.NoError(t, err)

	defer res.Body.Close()

	var env struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))

	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SOURCE_UNAVAILABLE", env.Error.Code)
}
