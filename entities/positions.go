package entities

import "github.com/xgillard/apca-datav2/numeric"

// PositionSide tells whether a position is long or short.
type PositionSide string

const (
	Long  PositionSide = "long"
	Short PositionSide = "short"
)

// PositionData describes one open position. Market value and P&L fields are
// updated live by the vendor as prices move.
type PositionData struct {
	AssetID        string         `json:"asset_id"`
	Symbol         string         `json:"symbol"`
	Exchange       string         `json:"exchange"`
	AssetClass     string         `json:"asset_class"`
	AvgEntryPrice  numeric.Number `json:"avg_entry_price"`
	Qty            numeric.Number `json:"qty"`
	Side           PositionSide   `json:"side"`
	MarketValue    numeric.Number `json:"market_value"`
	CostBasis      numeric.Number `json:"cost_basis"`
	UnrealizedPL   numeric.Number `json:"unrealized_pl"`
	UnrealizedPLPC numeric.Number `json:"unrealized_plpc"`
	// Intraday variants reset at each session open.
	UnrealizedIntradayPL   numeric.Number `json:"unrealized_intraday_pl"`
	UnrealizedIntradayPLPC numeric.Number `json:"unrealized_intraday_plpc"`
	CurrentPrice           numeric.Number `json:"current_price"`
	LastdayPrice           numeric.Number `json:"lastday_price"`
	ChangeToday            numeric.Number `json:"change_today"`
}

// ClosureData is one element of the close-all-positions response: the HTTP
// status of the liquidation attempt for the symbol plus the resulting order.
type ClosureData struct {
	Symbol string    `json:"symbol"`
	Status int       `json:"status"`
	Order  OrderData `json:"body"`
}
