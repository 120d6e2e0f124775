package entities

import "time"

// WatchlistData is an ordered list of assets registered under the account. A
// watchlist is addressed by id; the name is user-defined and non-unique.
type WatchlistData struct {
	ID        string      `json:"id"`
	AccountID string      `json:"account_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at"`
	Name      string      `json:"name"`
	Assets    []AssetData `json:"assets"`
}
