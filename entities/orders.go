// Package entities defines the trading entities and enumerations returned by
// the Alpaca v2 API.
package entities

import (
	"time"

	"github.com/xgillard/apca-datav2/numeric"
)

// OrderClass selects the order grouping behaviour.
type OrderClass string

const (
	OrderClassSimple           OrderClass = "simple"
	OrderClassBracket          OrderClass = "bracket"
	OrderClassOneTriggersOther OrderClass = "oto"
	OrderClassOneCancelsOther  OrderClass = "oco"
)

// OrderType is the execution type of an order.
type OrderType string

const (
	OrderTypeMarket       OrderType = "market"
	OrderTypeLimit        OrderType = "limit"
	OrderTypeStop         OrderType = "stop"
	OrderTypeStopLimit    OrderType = "stop_limit"
	OrderTypeTrailingStop OrderType = "trailing_stop"
)

// OrderSide is the direction of an order.
type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

// Direction orders listing results by time.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// TimeInForce controls how long an order stays eligible for execution.
type TimeInForce string

const (
	// Day orders are eligible only during the trading day they were placed.
	Day TimeInForce = "day"
	// GoodUntilCanceled orders stay open until explicitly canceled.
	GoodUntilCanceled TimeInForce = "gtc"
	// OpeningAuction orders execute only in the market opening auction.
	OpeningAuction TimeInForce = "opg"
	// ClosingAuction orders execute only in the market closing auction.
	ClosingAuction TimeInForce = "cls"
	// ImmediateOrCancel executes immediately and cancels any unfilled portion.
	ImmediateOrCancel TimeInForce = "ioc"
	// FillOrKill executes only if the entire quantity can be filled.
	FillOrKill TimeInForce = "fok"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderNew                OrderStatus = "new"
	OrderPartiallyFilled    OrderStatus = "partially_filled"
	OrderFilled             OrderStatus = "filled"
	OrderDoneForDay         OrderStatus = "done_for_day"
	OrderCanceled           OrderStatus = "canceled"
	OrderExpired            OrderStatus = "expired"
	OrderReplaced           OrderStatus = "replaced"
	OrderPendingCancel      OrderStatus = "pending_cancel"
	OrderPendingReplace     OrderStatus = "pending_replace"
	OrderAccepted           OrderStatus = "accepted"
	OrderPendingNew         OrderStatus = "pending_new"
	OrderAcceptedForBidding OrderStatus = "accepted_for_bidding"
	OrderStopped            OrderStatus = "stopped"
	OrderRejected           OrderStatus = "rejected"
	OrderSuspended          OrderStatus = "suspended"
	OrderCalculated         OrderStatus = "calculated"
)

// OrderData is the order snapshot returned by the trading API and carried in
// every order-update stream event. Quantity and price fields arrive as quoted
// decimal strings or plain numbers depending on the endpoint; numeric.Number
// absorbs both.
type OrderData struct {
	ID            string     `json:"id"`
	ClientOrderID string     `json:"client_order_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
	SubmittedAt   *time.Time `json:"submitted_at"`
	FilledAt      *time.Time `json:"filled_at"`
	ExpiredAt     *time.Time `json:"expired_at"`
	CanceledAt    *time.Time `json:"canceled_at"`
	FailedAt      *time.Time `json:"failed_at"`
	ReplacedAt    *time.Time `json:"replaced_at"`
	// ReplacedBy holds the id of the order that replaced this one.
	ReplacedBy *string `json:"replaced_by"`
	// Replaces holds the id of the order this one replaced.
	Replaces   *string `json:"replaces"`
	AssetID    string  `json:"asset_id"`
	Symbol     string  `json:"symbol"`
	AssetClass string  `json:"asset_class"`
	// Notional is the ordered dollar amount; mutually exclusive with Qty.
	Notional       *numeric.Number `json:"notional"`
	Qty            *numeric.Number `json:"qty"`
	FilledQty      numeric.Number  `json:"filled_qty"`
	FilledAvgPrice *numeric.Number `json:"filled_avg_price"`
	OrderClass     OrderClass      `json:"order_class"`
	Type           OrderType       `json:"type"`
	Side           OrderSide       `json:"side"`
	TimeInForce    TimeInForce     `json:"time_in_force"`
	LimitPrice     *numeric.Number `json:"limit_price"`
	StopPrice      *numeric.Number `json:"stop_price"`
	Status         OrderStatus     `json:"status"`
	ExtendedHours  bool            `json:"extended_hours"`
	// Legs carries the associated orders of a non-simple order class.
	Legs []OrderData `json:"legs"`
	// TrailPercent and TrailPrice configure trailing stop orders.
	TrailPercent *numeric.Number `json:"trail_percent"`
	TrailPrice   *numeric.Number `json:"trail_price"`
	// HWM is the high water mark seen since a trailing stop was submitted.
	HWM *numeric.Number `json:"hwm"`
}
