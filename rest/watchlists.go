package rest

import (
	"context"
	"net/url"

	"github.com/xgillard/apca-datav2/entities"
	"github.com/xgillard/apca-datav2/errs"
)

const watchlistsEndpoint = "/v2/watchlists"

// watchlistBody is the create/update request body. Symbols replace the
// watchlist content wholesale.
type watchlistBody struct {
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}

type watchlistAdd struct {
	Symbol string `json:"symbol"`
}

// ListWatchlists returns the watchlists registered under the account.
func (c *Client) ListWatchlists(ctx context.Context) ([]entities.WatchlistData, error) {
	var out []entities.WatchlistData
	if err := c.get(ctx, errs.FamilyWatchlists, c.baseURL+watchlistsEndpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWatchlist creates a watchlist with an initial set of assets. Names
// are caller-defined, up to 64 characters.
func (c *Client) CreateWatchlist(ctx context.Context, name string, symbols []string) (entities.WatchlistData, error) {
	var out entities.WatchlistData
	err := c.post(ctx, errs.FamilyWatchlists, c.baseURL+watchlistsEndpoint, watchlistBody{Name: name, Symbols: symbols}, &out)
	return out, err
}

// GetWatchlist returns the watchlist with the given id.
func (c *Client) GetWatchlist(ctx context.Context, id string) (entities.WatchlistData, error) {
	var out entities.WatchlistData
	err := c.get(ctx, errs.FamilyWatchlists, c.baseURL+watchlistsEndpoint+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

// UpdateWatchlist replaces the name and content of a watchlist.
func (c *Client) UpdateWatchlist(ctx context.Context, id, name string, symbols []string) (entities.WatchlistData, error) {
	var out entities.WatchlistData
	err := c.put(ctx, errs.FamilyWatchlists, c.baseURL+watchlistsEndpoint+"/"+url.PathEscape(id), watchlistBody{Name: name, Symbols: symbols}, &out)
	return out, err
}

// AddAssetToWatchlist appends the symbol to the end of the watchlist.
func (c *Client) AddAssetToWatchlist(ctx context.Context, id, symbol string) (entities.WatchlistData, error) {
	var out entities.WatchlistData
	err := c.post(ctx, errs.FamilyWatchlists, c.baseURL+watchlistsEndpoint+"/"+url.PathEscape(id), watchlistAdd{Symbol: symbol}, &out)
	return out, err
}

// DeleteWatchlist permanently deletes a watchlist.
func (c *Client) DeleteWatchlist(ctx context.Context, id string) error {
	return c.delete(ctx, errs.FamilyWatchlists, c.baseURL+watchlistsEndpoint+"/"+url.PathEscape(id), nil, nil)
}

// RemoveAssetFromWatchlist removes one symbol from the watchlist.
func (c *Client) RemoveAssetFromWatchlist(ctx context.Context, id, symbol string) error {
	return c.delete(ctx, errs.FamilyWatchlists, c.baseURL+watchlistsEndpoint+"/"+url.PathEscape(id)+"/"+url.PathEscape(symbol), nil, nil)
}
