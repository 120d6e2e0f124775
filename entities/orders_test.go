package entities

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// Reference payload: quantities arrive as quoted strings, optional prices as null.
const orderJSON = `{
	"id":"81859481-60e1-48d2-ba43-8279af711b9e",
	"client_order_id":"a50ffe4e-e631-446e-ad57-ba7fa5f1718c",
	"created_at":"2021-11-08T20:51:49.909525Z",
	"updated_at":"2021-11-08T20:51:49.909525Z",
	"submitted_at":"2021-11-08T20:51:49.903435Z",
	"filled_at":null,
	"expired_at":null,
	"canceled_at":null,
	"failed_at":null,
	"replaced_at":null,
	"replaced_by":null,
	"replaces":null,
	"asset_id":"d9b3d190-0046-4aba-b668-a9c8f9f6787d",
	"symbol":"BTI",
	"asset_class":"us_equity",
	"notional":null,
	"qty":"30",
	"filled_qty":"0",
	"filled_avg_price":null,
	"order_class":"simple",
	"order_type":"market",
	"type":"market",
	"side":"buy",
	"time_in_force":"day",
	"limit_price":null,
	"stop_price":null,
	"status":"accepted",
	"extended_hours":false,
	"legs":null,
	"trail_percent":null,
	"trail_price":null,
	"hwm":null
}`

func TestDecodeOrder(t *testing.T) {
	var order OrderData
	require.NoError(t, json.Unmarshal([]byte(orderJSON), &order))

	require.Equal(t, "BTI", order.Symbol)
	require.Equal(t, OrderAccepted, order.Status)
	require.Equal(t, Buy, order.Side)
	require.Equal(t, OrderTypeMarket, order.Type)
	require.Equal(t, Day, order.TimeInForce)
	require.NotNil(t, order.Qty)
	require.Equal(t, 30.0, order.Qty.Float64())
	require.Equal(t, 0.0, order.FilledQty.Float64())
	require.Nil(t, order.FilledAvgPrice)
	require.Nil(t, order.Notional)
	require.Nil(t, order.FilledAt)
	require.Empty(t, order.Legs)
}

func TestDecodePosition(t *testing.T) {
	payload := `{
		"asset_id":"904837e3-3b76-47ec-b432-046db621571b",
		"symbol":"AAPL",
		"exchange":"NASDAQ",
		"asset_class":"us_equity",
		"avg_entry_price":"100.0",
		"qty":"5",
		"side":"long",
		"market_value":"600.0",
		"cost_basis":"500.0",
		"unrealized_pl":"100.0",
		"unrealized_plpc":"0.20",
		"unrealized_intraday_pl":"10.0",
		"unrealized_intraday_plpc":"0.0084",
		"current_price":"120.0",
		"lastday_price":"119.0",
		"change_today":"0.0084"
	}`
	var pos PositionData
	require.NoError(t, json.Unmarshal([]byte(payload), &pos))
	require.Equal(t, Long, pos.Side)
	require.Equal(t, 5.0, pos.Qty.Float64())
	require.Equal(t, 600.0, pos.MarketValue.Float64())
}
