package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/advisordesk/advisordesk/internal/asset"
	"github.com/advisordesk/advisordesk/internal/lead"
	"github.com/advisordesk/advisordesk/internal/market"
	"github.com/advisordesk/advisordesk/internal/query"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

func transactionValues(p transaction.Params) url.Values {
	v := url.Values{}
	setIfPresent(v, "type", p.Kind)
	setIfPresent(v, "status", p.Status)
	setIfPresent(v, "startDate", p.DateFrom)
	setIfPresent(v, "endDate", p.DateTo)
	setIfPresent(v, "page", p.Page)
	setIfPresent(v, "pageSize", p.PageSize)
	setIfPresent(v, "sortBy", p.SortBy)
	setIfPresent(v, "sortOrder", p.SortOrder)

	return v
}

func (c *Client) Transactions(ctx context.Context, p transaction.Params) (query.Page[transaction.Transaction], error) {
	return getJSON[query.Page[transaction.Transaction]](ctx, c, "/api/v1/transactions", transactionValues(p))
}

func (c *Client) TransactionFlows(ctx context.Context, p transaction.Params) (transaction.FlowTotals, error) {
	return getJSON[transaction.FlowTotals](ctx, c, "/api/v1/transactions/flows", transactionValues(p))
}

func assetValues(p asset.Params) url.Values {
	v := url.Values{}
	setIfPresent(v, "category", p.Category)
	setIfPresent(v, "page", p.Page)
	setIfPresent(v, "pageSize", p.PageSize)
	setIfPresent(v, "sortBy", p.SortBy)
	setIfPresent(v, "sortOrder", p.SortOrder)

	return v
}

func (c *Client) Assets(ctx context.Context, p asset.Params) (query.Page[asset.Asset], error) {
	return getJSON[query.Page[asset.Asset]](ctx, c, "/api/v1/assets", assetValues(p))
}

func (c *Client) PortfolioSummary(ctx context.Context, p asset.Params) (asset.PortfolioSummary, error) {
	v := assetValues(p)
	v.Set("summary", "true")

	return getJSON[asset.PortfolioSummary](ctx, c, "/api/v1/assets", v)
}

func (c *Client) TopPerformers(ctx context.Context, p asset.Params, limit int) ([]asset.Asset, error) {
	v := assetValues(p)
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}

	return getJSON[[]asset.Asset](ctx, c, "/api/v1/assets/top-performers", v)
}

func (c *Client) DayChange(ctx context.Context, p asset.Params) (asset.DayChangeTotals, error) {
	return getJSON[asset.DayChangeTotals](ctx, c, "/api/v1/assets/day-change", assetValues(p))
}

func leadValues(p lead.Params) url.Values {
	v := url.Values{}
	setIfPresent(v, "status", p.Status)
	setIfPresent(v, "source", p.Source)
	setIfPresent(v, "assignedTo", p.AssignedTo)
	setIfPresent(v, "startDate", p.DateFrom)
	setIfPresent(v, "endDate", p.DateTo)
	setIfPresent(v, "scheme", p.Scheme)
	setIfPresent(v, "search", p.Search)
	setIfPresent(v, "page", p.Page)
	setIfPresent(v, "pageSize", p.PageSize)
	setIfPresent(v, "sortBy", p.SortBy)
	setIfPresent(v, "sortOrder", p.SortOrder)

	return v
}

func (c *Client) Leads(ctx context.Context, p lead.Params) (query.Page[lead.Lead], error) {
	return getJSON[query.Page[lead.Lead]](ctx, c, "/api/v1/leads", leadValues(p))
}

func (c *Client) LeadAnalytics(ctx context.Context, p lead.Params) (lead.Analytics, error) {
	v := leadValues(p)
	v.Set("analytics", "true")

	return getJSON[lead.Analytics](ctx, c, "/api/v1/leads", v)
}

func (c *Client) ChannelBreakdown(ctx context.Context, p lead.Params) ([]lead.ChannelStat, error) {
	return getJSON[[]lead.ChannelStat](ctx, c, "/api/v1/leads/channels", leadValues(p))
}

func (c *Client) LeadTrend(ctx context.Context, p lead.Params, period string) ([]lead.TrendPoint, error) {
	v := leadValues(p)
	setIfPresent(v, "period", period)

	return getJSON[[]lead.TrendPoint](ctx, c, "/api/v1/leads/trend", v)
}

func (c *Client) TopProspects(ctx context.Context, p lead.Params, limit int) ([]lead.Lead, error) {
	v := leadValues(p)
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}

	return getJSON[[]lead.Lead](ctx, c, "/api/v1/leads/top-prospects", v)
}

func marketValues(p market.Params) url.Values {
	v := url.Values{}
	setIfPresent(v, "symbols", p.Symbols)
	setIfPresent(v, "sector", p.Sector)
	setIfPresent(v, "startDate", p.DateFrom)
	setIfPresent(v, "endDate", p.DateTo)

	return v
}

func (c *Client) MarketSummary(ctx context.Context, p market.Params) (market.Summary, error) {
	return getJSON[market.Summary](ctx, c, "/api/v1/market-summary", marketValues(p))
}

func (c *Client) MarketBreadth(ctx context.Context, p market.Params) (market.BreadthMetrics, error) {
	return getJSON[market.BreadthMetrics](ctx, c, "/api/v1/market-summary/breadth", marketValues(p))
}
