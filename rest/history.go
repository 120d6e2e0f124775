package rest

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/xgillard/apca-datav2/errs"
	"github.com/xgillard/apca-datav2/marketdata"
)

const stocksEndpoint = "/v2/stocks"

// HistoryRequest bounds a historical range query. Start and End are
// inclusive RFC-3339 instants; Limit caps the items per page (vendor default
// 1000, maximum 10000). The continuation token is managed by the pagination
// engine and is not part of the request.
type HistoryRequest struct {
	Symbol string
	Start  time.Time
	End    time.Time
	Limit  int
}

func (r HistoryRequest) query(token *string) url.Values {
	query := url.Values{}
	query.Set("start", r.Start.Format(time.RFC3339))
	query.Set("end", r.End.Format(time.RFC3339))
	if r.Limit > 0 {
		query.Set("limit", strconv.Itoa(r.Limit))
	}
	if token != nil {
		query.Set("page_token", *token)
	}
	return query
}

// GetTrades fetches one page of the symbol's trade history. Most callers
// want StreamTrades instead, which chains the pages into one sequence.
func (c *Client) GetTrades(ctx context.Context, req HistoryRequest, token *string) (marketdata.TradePage, error) {
	var page marketdata.TradePage
	u := c.dataURL + stocksEndpoint + "/" + url.PathEscape(req.Symbol) + "/trades"
	err := c.get(ctx, errs.FamilyHistory, u, req.query(token), &page)
	return page, err
}

// StreamTrades returns the symbol's trade history over [Start, End] as one
// lazy sequence, fetching pages as consumption progresses.
func (c *Client) StreamTrades(ctx context.Context, req HistoryRequest) *Pager[marketdata.TradeData, marketdata.TradePage] {
	return NewPager(ctx, func(ctx context.Context, token *string) (marketdata.TradePage, error) {
		return c.GetTrades(ctx, req, token)
	})
}

// GetQuotes fetches one page of the symbol's quote history.
func (c *Client) GetQuotes(ctx context.Context, req HistoryRequest, token *string) (marketdata.QuotePage, error) {
	var page marketdata.QuotePage
	u := c.dataURL + stocksEndpoint + "/" + url.PathEscape(req.Symbol) + "/quotes"
	err := c.get(ctx, errs.FamilyHistory, u, req.query(token), &page)
	return page, err
}

// StreamQuotes returns the symbol's quote history over [Start, End] as one
// lazy sequence.
func (c *Client) StreamQuotes(ctx context.Context, req HistoryRequest) *Pager[marketdata.QuoteData, marketdata.QuotePage] {
	return NewPager(ctx, func(ctx context.Context, token *string) (marketdata.QuotePage, error) {
		return c.GetQuotes(ctx, req, token)
	})
}

// BarsRequest bounds a historical bars query; bars additionally need the
// aggregation window.
type BarsRequest struct {
	HistoryRequest
	TimeFrame marketdata.TimeFrame
}

// GetBars fetches one page of the symbol's bar history.
func (c *Client) GetBars(ctx context.Context, req BarsRequest, token *string) (marketdata.BarPage, error) {
	query := req.query(token)
	query.Set("timeframe", string(req.TimeFrame))
	var page marketdata.BarPage
	u := c.dataURL + stocksEndpoint + "/" + url.PathEscape(req.Symbol) + "/bars"
	err := c.get(ctx, errs.FamilyHistory, u, query, &page)
	return page, err
}

// StreamBars returns the symbol's bar history over [Start, End] at the given
// timeframe as one lazy sequence.
func (c *Client) StreamBars(ctx context.Context, req BarsRequest) *Pager[marketdata.BarData, marketdata.BarPage] {
	return NewPager(ctx, func(ctx context.Context, token *string) (marketdata.BarPage, error) {
		return c.GetBars(ctx, req, token)
	})
}

// LatestTrade returns the most recent trade of the symbol.
func (c *Client) LatestTrade(ctx context.Context, symbol string) (marketdata.SingleTrade, error) {
	var out marketdata.SingleTrade
	u := c.dataURL + stocksEndpoint + "/" + url.PathEscape(symbol) + "/trades/latest"
	err := c.get(ctx, errs.FamilyHistory, u, nil, &out)
	return out, err
}

// LatestQuote returns the most recent NBBO quote of the symbol.
func (c *Client) LatestQuote(ctx context.Context, symbol string) (marketdata.SingleQuote, error) {
	var out marketdata.SingleQuote
	u := c.dataURL + stocksEndpoint + "/" + url.PathEscape(symbol) + "/quotes/latest"
	err := c.get(ctx, errs.FamilyHistory, u, nil, &out)
	return out, err
}

// Snapshot returns the symbol's latest trade and quote together with its
// minute, daily, and previous-daily bars.
func (c *Client) Snapshot(ctx context.Context, symbol string) (marketdata.SnapshotData, error) {
	var out marketdata.SnapshotData
	u := c.dataURL + stocksEndpoint + "/" + url.PathEscape(symbol) + "/snapshot"
	err := c.get(ctx, errs.FamilyHistory, u, nil, &out)
	return out, err
}
