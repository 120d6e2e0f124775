// Package rest implements the authenticated HTTP surface of the Alpaca v2
// API: the verb helpers with credential headers, the per-family status-code
// mapping, and the cursor pagination engine shared by every paged listing.
package rest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/xgillard/apca-datav2/errs"
)

// Header names used to authenticate every request.
const (
	HeaderKeyID     = "APCA-API-KEY-ID"
	HeaderSecretKey = "APCA-API-SECRET-KEY"
)

// Base URLs for the trading and market-data services.
const (
	LiveTradingURL  = "https://api.alpaca.markets"
	PaperTradingURL = "https://paper-api.alpaca.markets"
	MarketDataURL   = "https://data.alpaca.markets"
)

// Client is an authenticated Alpaca REST client. The underlying http.Client
// connection pool is shared and safe for concurrent use; many pagers may run
// against one Client at the same time.
type Client struct {
	key     string
	secret  string
	http    *http.Client
	baseURL string
	dataURL string
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLimiter installs a client-side request limiter. The history endpoints
// return 429 when pushed; a limiter keeps well-behaved callers under the cap.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithBaseURL overrides the trading base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithDataURL overrides the market-data base URL.
func WithDataURL(u string) Option {
	return func(c *Client) {
		c.dataURL = strings.TrimRight(u, "/")
	}
}

// Live creates a client against the live trading environment.
func Live(key, secret string, opts ...Option) *Client {
	return New(key, secret, true, opts...)
}

// Paper creates a client against the paper trading environment.
func Paper(key, secret string, opts ...Option) *Client {
	return New(key, secret, false, opts...)
}

// New creates a client for the selected environment.
func New(key, secret string, live bool, opts ...Option) *Client {
	baseURL := PaperTradingURL
	if live {
		baseURL = LiveTradingURL
	}
	hc := new(http.Client)
	hc.Timeout = 30 * time.Second
	c := &Client{
		key:     key,
		secret:  secret,
		http:    hc,
		baseURL: baseURL,
		dataURL: MarketDataURL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the trading base URL in use.
func (c *Client) BaseURL() string { return c.baseURL }

// DataURL returns the market-data base URL in use.
func (c *Client) DataURL() string { return c.dataURL }

// apiError is the error body shape the vendor returns alongside non-2xx
// statuses. The code arrives as a JSON number.
type apiError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// do executes one request and decodes the response into out (skipped when out
// is nil). Non-2xx statuses map through the family's status table.
func (c *Client) do(ctx context.Context, family errs.Family, method, rawURL string, query url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errs.Transport(family, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errs.Serialization(family, err)
		}
		reader = bytes.NewReader(payload)
	}

	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return errs.Transport(family, err)
	}
	req.Header.Set(HeaderKeyID, c.key)
	req.Header.Set(HeaderSecretKey, c.secret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Transport(family, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Transport(family, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var vendor apiError
		rawCode := ""
		if json.Unmarshal(raw, &vendor) == nil && vendor.Code != 0 {
			rawCode = strconv.FormatInt(vendor.Code, 10)
		}
		return errs.FromStatus(family, resp.StatusCode, rawCode, vendor.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Serialization(family, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, family errs.Family, url string, query url.Values, out any) error {
	return c.do(ctx, family, http.MethodGet, url, query, nil, out)
}

func (c *Client) post(ctx context.Context, family errs.Family, url string, body, out any) error {
	return c.do(ctx, family, http.MethodPost, url, nil, body, out)
}

func (c *Client) put(ctx context.Context, family errs.Family, url string, body, out any) error {
	return c.do(ctx, family, http.MethodPut, url, nil, body, out)
}

func (c *Client) patch(ctx context.Context, family errs.Family, url string, body, out any) error {
	return c.do(ctx, family, http.MethodPatch, url, nil, body, out)
}

func (c *Client) delete(ctx context.Context, family errs.Family, url string, query url.Values, out any) error {
	return c.do(ctx, family, http.MethodDelete, url, query, nil, out)
}
