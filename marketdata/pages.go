package marketdata

// The historical endpoints page through their ranges with an opaque
// next_page_token cursor. Each page shape implements the pagination engine's
// Paged contract structurally; a null token marks the end of the range. The
// vendor may return a page with zero items and a token mid-range, which is
// non-terminal.

// SingleTrade holds the latest trade of one symbol.
type SingleTrade struct {
	Symbol string    `json:"symbol"`
	Trade  TradeData `json:"trade"`
}

// SingleQuote holds the latest quote of one symbol.
type SingleQuote struct {
	Symbol string    `json:"symbol"`
	Quote  QuoteData `json:"quote"`
}

// SingleBar holds one bar of one symbol.
type SingleBar struct {
	Symbol string  `json:"symbol"`
	Bar    BarData `json:"bar"`
}

// TradePage is one page of a historical trades range.
type TradePage struct {
	Trades        []TradeData `json:"trades"`
	Symbol        string      `json:"symbol"`
	NextPageToken *string     `json:"next_page_token"`
}

// Split implements the pagination engine's page contract.
func (p TradePage) Split() ([]TradeData, *string) {
	return p.Trades, p.NextPageToken
}

// QuotePage is one page of a historical quotes range.
type QuotePage struct {
	Quotes        []QuoteData `json:"quotes"`
	Symbol        string      `json:"symbol"`
	NextPageToken *string     `json:"next_page_token"`
}

// Split implements the pagination engine's page contract.
func (p QuotePage) Split() ([]QuoteData, *string) {
	return p.Quotes, p.NextPageToken
}

// BarPage is one page of a historical bars range.
type BarPage struct {
	Bars          []BarData `json:"bars"`
	Symbol        string    `json:"symbol"`
	NextPageToken *string   `json:"next_page_token"`
}

// Split implements the pagination engine's page contract.
func (p BarPage) Split() ([]BarData, *string) {
	return p.Bars, p.NextPageToken
}
