package rest

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xgillard/apca-datav2/entities"
	"github.com/xgillard/apca-datav2/errs"
)

const ordersEndpoint = "/v2/orders"

// SearchOrderStatus filters an order listing by lifecycle state.
type SearchOrderStatus string

const (
	SearchOpen   SearchOrderStatus = "open"
	SearchClosed SearchOrderStatus = "closed"
	SearchAll    SearchOrderStatus = "all"
)

// TakeProfit is the profit-taking leg of a bracket order.
type TakeProfit struct {
	LimitPrice float64 `json:"limit_price"`
}

// StopLoss is the loss-cutting leg of a bracket order.
type StopLoss struct {
	StopPrice  float64  `json:"stop_price"`
	LimitPrice *float64 `json:"limit_price,omitempty"`
}

// PlaceOrderRequest describes an order to submit. Qty and Notional are
// mutually exclusive; price fields are required or forbidden depending on
// Type. A zero ClientOrderID is replaced with a fresh UUID so every
// submission stays individually addressable.
type PlaceOrderRequest struct {
	Symbol        string               `json:"symbol"`
	Qty           *float64             `json:"qty,string,omitempty"`
	Notional      *float64             `json:"notional,string,omitempty"`
	Side          entities.OrderSide   `json:"side"`
	Type          entities.OrderType   `json:"type,omitempty"`
	TimeInForce   entities.TimeInForce `json:"time_in_force,omitempty"`
	LimitPrice    *float64             `json:"limit_price,string,omitempty"`
	StopPrice     *float64             `json:"stop_price,string,omitempty"`
	TrailPrice    *float64             `json:"trail_price,string,omitempty"`
	TrailPercent  *float64             `json:"trail_percent,string,omitempty"`
	ExtendedHours bool                 `json:"extended_hours,omitempty"`
	ClientOrderID string               `json:"client_order_id,omitempty"`
	OrderClass    entities.OrderClass  `json:"order_class,omitempty"`
	TakeProfit    *TakeProfit          `json:"take_profit,omitempty"`
	StopLoss      *StopLoss            `json:"stop_loss,omitempty"`
}

// PlaceOrder submits an order and returns its initial snapshot. Later
// lifecycle transitions arrive on the order-update feed or via GetOrder.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (entities.OrderData, error) {
	if req.ClientOrderID == "" {
		req.ClientOrderID = uuid.NewString()
	}
	var out entities.OrderData
	err := c.post(ctx, errs.FamilyOrders, c.baseURL+ordersEndpoint, req, &out)
	return out, err
}

// ListOrdersRequest filters an order listing. Zero values are omitted from
// the query, falling back to the vendor defaults (open orders, most recent
// first, fifty entries).
type ListOrdersRequest struct {
	Status    SearchOrderStatus
	Limit     int
	After     time.Time
	Until     time.Time
	Direction entities.Direction
	Nested    bool
	Symbols   []string
}

// ListOrders returns the account's orders matching the request.
func (c *Client) ListOrders(ctx context.Context, req ListOrdersRequest) ([]entities.OrderData, error) {
	query := url.Values{}
	if req.Status != "" {
		query.Set("status", string(req.Status))
	}
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if !req.After.IsZero() {
		query.Set("after", req.After.Format(time.RFC3339))
	}
	if !req.Until.IsZero() {
		query.Set("until", req.Until.Format(time.RFC3339))
	}
	if req.Direction != "" {
		query.Set("direction", string(req.Direction))
	}
	if req.Nested {
		query.Set("nested", "true")
	}
	if len(req.Symbols) > 0 {
		query.Set("symbols", strings.Join(req.Symbols, ","))
	}
	var out []entities.OrderData
	if err := c.get(ctx, errs.FamilyOrders, c.baseURL+ordersEndpoint, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrder returns the order with the given id. When nested is true,
// multi-leg orders embed their legs instead of listing them separately.
func (c *Client) GetOrder(ctx context.Context, id string, nested bool) (entities.OrderData, error) {
	query := url.Values{}
	if nested {
		query.Set("nested", "true")
	}
	var out entities.OrderData
	err := c.get(ctx, errs.FamilyOrders, c.baseURL+ordersEndpoint+"/"+url.PathEscape(id), query, &out)
	return out, err
}

// GetOrderByClientOrderID resolves an order through the caller-assigned id.
func (c *Client) GetOrderByClientOrderID(ctx context.Context, clientOrderID string) (entities.OrderData, error) {
	query := url.Values{}
	query.Set("client_order_id", clientOrderID)
	var out entities.OrderData
	err := c.get(ctx, errs.FamilyOrders, c.baseURL+ordersEndpoint+":by_client_order_id", query, &out)
	return out, err
}

// ReplaceOrderRequest updates the live parameters of an open order. Nil
// fields keep their current value.
type ReplaceOrderRequest struct {
	Qty           *float64             `json:"qty,string,omitempty"`
	TimeInForce   entities.TimeInForce `json:"time_in_force,omitempty"`
	LimitPrice    *float64             `json:"limit_price,string,omitempty"`
	StopPrice     *float64             `json:"stop_price,string,omitempty"`
	Trail         *float64             `json:"trail,string,omitempty"`
	ClientOrderID string               `json:"client_order_id,omitempty"`
}

// ReplaceOrder atomically cancels an open order and resubmits it with the
// updated parameters. The returned snapshot is the replacement order; the
// replaced one transitions to the replaced status.
func (c *Client) ReplaceOrder(ctx context.Context, id string, req ReplaceOrderRequest) (entities.OrderData, error) {
	var out entities.OrderData
	err := c.patch(ctx, errs.FamilyOrders, c.baseURL+ordersEndpoint+"/"+url.PathEscape(id), req, &out)
	return out, err
}

// CancelOrder requests cancellation of an open order. Cancellation is
// asynchronous; confirmation arrives as a canceled event on the order-update
// feed. An order that is not cancelable yields a 422.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.delete(ctx, errs.FamilyOrders, c.baseURL+ordersEndpoint+"/"+url.PathEscape(id), nil, nil)
}

// CanceledOrderStatus is one entry of the cancel-all response: the order id
// and the HTTP status of that individual cancellation.
type CanceledOrderStatus struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
}

// CancelAllOrders attempts to cancel every open order. The response carries
// one entry per order with the individual cancellation status.
func (c *Client) CancelAllOrders(ctx context.Context) ([]CanceledOrderStatus, error) {
	var out []CanceledOrderStatus
	if err := c.delete(ctx, errs.FamilyOrders, c.baseURL+ordersEndpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
