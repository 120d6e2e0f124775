package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/xgillard/apca-datav2/entities"
	"github.com/xgillard/apca-datav2/errs"
)

const positionsEndpoint = "/v2/positions"

// ListOpenPositions returns the account's open positions. Cost basis and
// market value fields track live prices; a closed position disappears from
// this listing.
func (c *Client) ListOpenPositions(ctx context.Context) ([]entities.PositionData, error) {
	var out []entities.PositionData
	if err := c.get(ctx, errs.FamilyPositions, c.baseURL+positionsEndpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOpenPosition returns the open position for the given symbol or asset id.
func (c *Client) GetOpenPosition(ctx context.Context, symbol string) (entities.PositionData, error) {
	var out entities.PositionData
	err := c.get(ctx, errs.FamilyPositions, c.baseURL+positionsEndpoint+"/"+url.PathEscape(symbol), nil, &out)
	return out, err
}

// ClosePositionRequest liquidates part or all of one position. Qty and
// Percentage are mutually exclusive; leaving both nil liquidates the whole
// position.
type ClosePositionRequest struct {
	Symbol     string
	Qty        *float64
	Percentage *float64
}

// ClosePosition liquidates an open position by placing the offsetting order
// and returns it.
func (c *Client) ClosePosition(ctx context.Context, req ClosePositionRequest) (entities.OrderData, error) {
	query := url.Values{}
	if req.Qty != nil {
		query.Set("qty", strconv.FormatFloat(*req.Qty, 'f', -1, 64))
	}
	if req.Percentage != nil {
		query.Set("percentage", strconv.FormatFloat(*req.Percentage, 'f', -1, 64))
	}
	var out entities.OrderData
	err := c.delete(ctx, errs.FamilyPositions, c.baseURL+positionsEndpoint+"/"+url.PathEscape(req.Symbol), query, &out)
	return out, err
}

// CloseAllPositions liquidates every open long and short position. The
// response carries one entry per attempted closure; positions whose orders
// are no longer cancelable come back with a 500 status in their entry. When
// cancelOrders is true, all open orders are cancelled before liquidating.
func (c *Client) CloseAllPositions(ctx context.Context, cancelOrders bool) ([]entities.ClosureData, error) {
	query := url.Values{}
	query.Set("cancel_orders", strconv.FormatBool(cancelOrders))
	var out []entities.ClosureData
	if err := c.delete(ctx, errs.FamilyPositions, c.baseURL+positionsEndpoint, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
