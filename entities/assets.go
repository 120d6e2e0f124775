package entities

// AssetStatus filters assets by tradability lifecycle.
type AssetStatus string

const (
	AssetActive   AssetStatus = "active"
	AssetInactive AssetStatus = "inactive"
)

// AssetData is one entry of the master list of assets available for trade and
// data consumption. Assets that are data-only carry Tradable=false.
type AssetData struct {
	ID           string      `json:"id"`
	Class        string      `json:"class"`
	Exchange     string      `json:"exchange"`
	Symbol       string      `json:"symbol"`
	Name         string      `json:"name"`
	Status       AssetStatus `json:"status"`
	Tradable     bool        `json:"tradable"`
	Marginable   bool        `json:"marginable"`
	Shortable    bool        `json:"shortable"`
	EasyToBorrow bool        `json:"easy_to_borrow"`
	Fractionable bool        `json:"fractionable"`
}
