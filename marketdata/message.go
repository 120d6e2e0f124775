package marketdata

import (
	json "github.com/goccy/go-json"

	"github.com/xgillard/apca-datav2/errs"
	"github.com/xgillard/apca-datav2/numeric"
)

// Subscription lists the symbols wanted per channel. A subscribe request is an
// absolute replacement of the session's subscription set for the channels it
// names, not a delta; resend the full desired set to add or remove symbols.
// "*" subscribes to every symbol on the bars channel.
type Subscription struct {
	Trades []string `json:"trades,omitempty"`
	Quotes []string `json:"quotes,omitempty"`
	Bars   []string `json:"bars,omitempty"`
}

// Outbound actions. The action field is the discriminant.
type authAction struct {
	Action string `json:"action"`
	Key    string `json:"key"`
	Secret string `json:"secret"`
}

type subscriptionAction struct {
	Action string `json:"action"`
	Subscription
}

// Message is one decoded server-to-client message of the market-data socket.
// The set of implementations is closed: Error, Success, SubscriptionUpdate,
// Trade, Quote, and Bar.
type Message interface {
	isMessage()
}

// Error is a control message reporting a protocol-level failure.
type Error struct {
	Code errs.RealtimeCode `json:"code"`
	Msg  string            `json:"msg"`
}

// Err converts the control message into an error envelope.
func (e Error) Err() error {
	return errs.Realtime(e.Code, e.Msg)
}

// Success is a control message acknowledging connection or authentication.
type Success struct {
	Msg string `json:"msg"`
}

// SubscriptionUpdate echoes the session's entire current subscription set
// after every subscribe or unsubscribe. Channels the session is not
// subscribed to arrive as null and normalize to empty lists.
type SubscriptionUpdate struct {
	Trades numeric.SymbolList `json:"trades"`
	Quotes numeric.SymbolList `json:"quotes"`
	Bars   numeric.SymbolList `json:"bars"`
}

// Trade is one realtime trade data point.
type Trade struct {
	Symbol string `json:"S"`
	TradeData
}

// Quote is one realtime quote data point.
type Quote struct {
	Symbol string `json:"S"`
	QuoteData
}

// Bar is one realtime bar data point.
type Bar struct {
	Symbol string `json:"S"`
	BarData
}

func (Error) isMessage()              {}
func (Success) isMessage()            {}
func (SubscriptionUpdate) isMessage() {}
func (Trade) isMessage()              {}
func (Quote) isMessage()              {}
func (Bar) isMessage()                {}

// DecodeFrame decodes one inbound frame. Frames are JSON arrays: control
// messages arrive alone, data points may be batched. The "T" field selects
// the variant; an unrecognized tag fails the whole frame rather than being
// dropped, so schema drift surfaces.
func DecodeFrame(frame []byte) ([]Message, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(frame, &raws); err != nil {
		return nil, errs.Protocol(errs.FamilyStream, "market-data frame is not an array", err)
	}
	msgs := make([]Message, 0, len(raws))
	for _, raw := range raws {
		msg, err := decodeMessage(raw)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func decodeMessage(raw json.RawMessage) (Message, error) {
	// The discriminant must be read with an exact key lookup: struct tags
	// match case-insensitively, and every data message carries a lowercase
	// "t" timestamp key right next to the uppercase "T" tag.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, errs.Protocol(errs.FamilyStream, "missing message discriminant", err)
	}
	var tag string
	if err := json.Unmarshal(keys["T"], &tag); err != nil {
		return nil, errs.Protocol(errs.FamilyStream, "missing message discriminant", err)
	}

	var msg Message
	switch tag {
	case "error":
		msg = &Error{}
	case "success":
		msg = &Success{}
	case "subscription":
		msg = &SubscriptionUpdate{}
	case "t":
		msg = &Trade{}
	case "q":
		msg = &Quote{}
	case "b":
		msg = &Bar{}
	default:
		return nil, errs.UnknownVariant(errs.FamilyStream, "T", tag)
	}
	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, errs.Protocol(errs.FamilyStream, "decode "+tag+" message", err)
	}
	return msg, nil
}
