// Package tradestream consumes the order-update websocket feed. The session
// protocol mirrors the market-data one — authenticate, announce interest,
// drain an endless receive stream — but the wire dialect differs: frames are
// binary, messages are single objects tagged by a "stream" field, and
// authentication carries the credentials in a nested payload.
package tradestream

import (
	json "github.com/goccy/go-json"

	"github.com/xgillard/apca-datav2/entities"
	"github.com/xgillard/apca-datav2/errs"
	"github.com/xgillard/apca-datav2/numeric"
)

// TradeUpdatesStream is the stream name carrying order updates.
const TradeUpdatesStream = "trade_updates"

// authenticateAction is the credential handshake. Unlike the market-data
// feed, the credentials ride in a nested data object under different keys.
type authenticateAction struct {
	Action string           `json:"action"`
	Data   authenticateData `json:"data"`
}

type authenticateData struct {
	KeyID     string `json:"key_id"`
	SecretKey string `json:"secret_key"`
}

// listenAction announces which streams the session wants delivered.
type listenAction struct {
	Action string     `json:"action"`
	Data   listenData `json:"data"`
}

type listenData struct {
	Streams []string `json:"streams"`
}

// AuthStatus is the server's verdict on an authentication attempt.
type AuthStatus string

const (
	Authorized   AuthStatus = "authorized"
	Unauthorized AuthStatus = "unauthorized"
)

// Update is a message received on the order-update feed. The concrete type is
// one of Authorization, Listening, or TradeUpdate.
type Update interface {
	isUpdate()
}

// Authorization reports the outcome of an authenticate action.
type Authorization struct {
	Status AuthStatus `json:"status"`
	Action string     `json:"action"`
}

// Listening confirms the set of streams the session is subscribed to.
type Listening struct {
	Streams []string `json:"streams"`
}

// TradeUpdate reports a change in the lifecycle of one of the account's
// orders. Price, Timestamp, and PositionQty are populated only for fill
// events.
type TradeUpdate struct {
	Event       OrderEvent         `json:"event"`
	ExecutionID *string            `json:"execution_id,omitempty"`
	Price       *numeric.Number    `json:"price,omitempty"`
	Qty         *numeric.Number    `json:"qty,omitempty"`
	Timestamp   *string            `json:"timestamp,omitempty"`
	PositionQty *numeric.Number    `json:"position_qty,omitempty"`
	Order       entities.OrderData `json:"order"`
}

func (Authorization) isUpdate() {}
func (Listening) isUpdate()     {}
func (TradeUpdate) isUpdate()   {}

// OrderEvent names a transition in an order's lifecycle.
type OrderEvent string

const (
	OrderNew             OrderEvent = "new"
	OrderFill            OrderEvent = "fill"
	OrderPartialFill     OrderEvent = "partial_fill"
	OrderCanceled        OrderEvent = "canceled"
	OrderExpired         OrderEvent = "expired"
	OrderDoneForDay      OrderEvent = "done_for_day"
	OrderReplaced        OrderEvent = "replaced"
	OrderRejected        OrderEvent = "rejected"
	OrderPendingNew      OrderEvent = "pending_new"
	OrderStopped         OrderEvent = "stopped"
	OrderPendingCancel   OrderEvent = "pending_cancel"
	OrderPendingReplace  OrderEvent = "pending_replace"
	OrderCalculated      OrderEvent = "calculated"
	OrderSuspended       OrderEvent = "suspended"
	OrderReplaceRejected OrderEvent = "order_replace_rejected"
	OrderCancelRejected  OrderEvent = "order_cancel_rejected"
)

var orderEvents = map[OrderEvent]struct{}{
	OrderNew: {}, OrderFill: {}, OrderPartialFill: {}, OrderCanceled: {},
	OrderExpired: {}, OrderDoneForDay: {}, OrderReplaced: {}, OrderRejected: {},
	OrderPendingNew: {}, OrderStopped: {}, OrderPendingCancel: {},
	OrderPendingReplace: {}, OrderCalculated: {}, OrderSuspended: {},
	OrderReplaceRejected: {}, OrderCancelRejected: {},
}

// UnmarshalJSON rejects event names outside the known lifecycle set so that a
// vendor-side addition surfaces as an explicit decode failure rather than a
// silently misclassified update.
func (e *OrderEvent) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if _, ok := orderEvents[OrderEvent(raw)]; !ok {
		return errs.UnknownVariant(errs.FamilyStream, "event", raw)
	}
	*e = OrderEvent(raw)
	return nil
}

// DecodeFrame decodes a single inbound frame. Frames carry exactly one
// message, an object whose "stream" field selects the payload type under
// "data". Unknown stream tags fail loudly.
func DecodeFrame(frame []byte) (Update, error) {
	var envelope struct {
		Stream string          `json:"stream"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(frame, &envelope); err != nil {
		return nil, errs.Protocol(errs.FamilyStream, "decode stream envelope", err)
	}
	var update Update
	switch envelope.Stream {
	case "authorization":
		update = &Authorization{}
	case "listening":
		update = &Listening{}
	case TradeUpdatesStream:
		update = &TradeUpdate{}
	default:
		return nil, errs.UnknownVariant(errs.FamilyStream, "stream", envelope.Stream)
	}
	if err := json.Unmarshal(envelope.Data, update); err != nil {
		return nil, errs.Protocol(errs.FamilyStream, "decode "+envelope.Stream+" payload", err)
	}
	return update, nil
}
