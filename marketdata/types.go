// Package marketdata models the Alpaca Data API v2: the historical
// trade/quote/bar payloads served over REST and the realtime feed served over
// the market-data websocket.
package marketdata

import (
	"time"

	"github.com/xgillard/apca-datav2/numeric"
)

// Feed selects the realtime data source. IEX is the feed included in the free
// subscription plan; SIP requires the unlimited plan.
type Feed string

const (
	IEX Feed = "iex"
	SIP Feed = "sip"
)

// TimeFrame is the aggregation window of a historical bar.
type TimeFrame string

const (
	Minute TimeFrame = "1Min"
	Hour   TimeFrame = "1Hour"
	Day    TimeFrame = "1Day"
)

// Exchange is the single-letter code of a stock exchange as it appears in
// market-data payloads.
type Exchange string

const (
	Amex                            Exchange = "A"
	NasdaqOmxBx                     Exchange = "B"
	NationalStockExchange           Exchange = "C"
	FinraAdf                        Exchange = "D"
	MarketIndependent               Exchange = "E"
	Miax                            Exchange = "H"
	InternationalSecuritiesExchange Exchange = "I"
	CboeEdga                        Exchange = "J"
	CboeEdgx                        Exchange = "K"
	LongTermStockExchange           Exchange = "L"
	ChicagoStockExchange            Exchange = "M"
	NewYorkStockExchange            Exchange = "N"
	NyseArca                        Exchange = "P"
	NasdaqOmx                       Exchange = "Q"
	NasdaqSmallCap                  Exchange = "S"
	NasdaqInt                       Exchange = "T"
	MembersExchange                 Exchange = "U"
	Iex                             Exchange = "V"
	Cboe                            Exchange = "W"
	NasdaqOmxPsx                    Exchange = "X"
	CboeByx                         Exchange = "Y"
	CboeBzx                         Exchange = "Z"
)

// TradeData is one executed trade. Condition codes are feed-specific; the
// same condition may carry a different code depending on the originating tape.
type TradeData struct {
	TradeID    int64          `json:"i"`
	Exchange   Exchange       `json:"x"`
	Price      numeric.Number `json:"p"`
	Size       uint64         `json:"s"`
	Timestamp  time.Time      `json:"t"`
	Conditions []string       `json:"c"`
	Tape       string         `json:"z"`
}

// QuoteData is one NBBO quote.
type QuoteData struct {
	AskExchange Exchange       `json:"ax"`
	AskPrice    numeric.Number `json:"ap"`
	AskSize     uint64         `json:"as"`
	BidExchange Exchange       `json:"bx"`
	BidPrice    numeric.Number `json:"bp"`
	BidSize     uint64         `json:"bs"`
	Timestamp   time.Time      `json:"t"`
	Conditions  []string       `json:"c"`
	Tape        string         `json:"z"`
}

// BarData is one OHLCV aggregate.
type BarData struct {
	Open      numeric.Number `json:"o"`
	High      numeric.Number `json:"h"`
	Low       numeric.Number `json:"l"`
	Close     numeric.Number `json:"c"`
	Volume    uint64         `json:"v"`
	Timestamp time.Time      `json:"t"`
}

// SnapshotData bundles the latest trade, latest quote, and the current,
// daily, and previous-daily bars for one symbol.
type SnapshotData struct {
	Symbol       string    `json:"symbol"`
	LatestTrade  TradeData `json:"latestTrade"`
	LatestQuote  QuoteData `json:"latestQuote"`
	MinuteBar    BarData   `json:"minuteBar"`
	DailyBar     BarData   `json:"dailyBar"`
	PrevDailyBar BarData   `json:"prevDailyBar"`
}
