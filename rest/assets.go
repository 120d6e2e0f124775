package rest

import (
	"context"
	"net/url"

	"github.com/xgillard/apca-datav2/entities"
	"github.com/xgillard/apca-datav2/errs"
)

const assetsEndpoint = "/v2/assets"

// ListAssetsRequest filters the asset master list. Zero values mean "no
// filter": all statuses, the default us_equity class.
type ListAssetsRequest struct {
	Status     entities.AssetStatus
	AssetClass string
}

// ListAssets returns the master list of assets available for trade and data
// consumption. Assets flagged tradable=false are served for data only.
func (c *Client) ListAssets(ctx context.Context, req ListAssetsRequest) ([]entities.AssetData, error) {
	query := url.Values{}
	if req.Status != "" {
		query.Set("status", string(req.Status))
	}
	if req.AssetClass != "" {
		query.Set("asset_class", req.AssetClass)
	}
	var out []entities.AssetData
	if err := c.get(ctx, errs.FamilyAssets, c.baseURL+assetsEndpoint, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAsset returns the asset for the given symbol or asset id.
func (c *Client) GetAsset(ctx context.Context, symbol string) (entities.AssetData, error) {
	var out entities.AssetData
	err := c.get(ctx, errs.FamilyAssets, c.baseURL+assetsEndpoint+"/"+url.PathEscape(symbol), nil, &out)
	return out, err
}
