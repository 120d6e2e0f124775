package errs

import "strconv"

// statusTables records, per resource family, the documented meaning of the
// non-2xx statuses Alpaca returns for that family. The tables are part of the
// vendor contract and must not be collapsed into a single generic mapping.
var statusTables = map[Family]map[int]string{
	FamilyOrders: {
		403: "insufficient buying power or shares",
		404: "order not found",
		422: "order parameters are not recognized or violate a requirement",
		500: "order acceptance failed",
	},
	FamilyPositions: {
		404: "position not found",
		500: "liquidation failed, one or more orders rejected",
	},
	FamilyAssets: {
		404: "asset not found",
	},
	FamilyWatchlists: {
		404: "watchlist or asset not found",
		422: "invalid watchlist name or symbol",
	},
	FamilyHistory: {
		400: "invalid query parameter",
		403: "unauthorized",
		404: "resource not found",
		422: "invalid query parameter value",
		429: "rate limit exceeded",
	},
}

// FromStatus maps a non-2xx HTTP status to the vendor error defined for the
// given resource family. rawCode and rawMsg come from the vendor response body
// when one was decodable; either may be empty.
func FromStatus(family Family, status int, rawCode, rawMsg string) *E {
	opts := []Option{WithHTTP(status), WithRawCode(rawCode), WithRawMessage(rawMsg)}
	if msg, ok := statusTables[family][status]; ok {
		opts = append(opts, WithMessage(msg))
	} else {
		opts = append(opts, WithMessage("unexpected http status "+strconv.Itoa(status)))
	}
	return New(family, CodeVendor, opts...)
}
