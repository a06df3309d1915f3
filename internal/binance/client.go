package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://api.binance.com"
	defaultTimeout = 10 * time.Second

	accountPath = "/api/v3/account"
	pricePath   = "/api/v3/ticker/price"
	apiKeyHdr   = "X-MBX-APIKEY"

	// upstream bodies are truncated before they reach logs
	maxErrorBody = 4 << 10
)

// RawBalance is one entry of /api/v3/account, amounts as decimal strings.
type RawBalance struct {
	Asset  string `json:"asset"`
	Free   string `json:"free"`
	Locked string `json:"locked"`
}

type AccountInfo struct {
	AccountType string       `json:"accountType"`
	CanTrade    bool         `json:"canTrade"`
	CanWithdraw bool         `json:"canWithdraw"`
	CanDeposit  bool         `json:"canDeposit"`
	Balances    []RawBalance `json:"balances"`
}

type tickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Client calls the Binance spot REST API.
type Client struct {
	baseURL string
	http    *http.Client
	signer  *Signer
	now     func() time.Time
}

// NewClient returns ErrMissingCredentials when apiKey or secret is empty.
func NewClient(baseURL, apiKey, secret string, timeout time.Duration) (*Client, error) {
	signer, err := NewSigner(apiKey, secret)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		signer:  signer,
		now:     time.Now,
	}, nil
}

// Account fetches account flags and balances with a signed request.
func (c *Client) Account(ctx context.Context) (*AccountInfo, error) {
	query := c.signer.Sign(url.Values{}, c.now())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+accountPath+"?"+query, nil)
	if err != nil {
		return nil, fmt.Errorf("build account request: %w", err)
	}
	req.Header.Set(apiKeyHdr, c.signer.APIKey())

	var info AccountInfo
	if err := c.do(req, "get account", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Price returns the last price for symbol, e.g. "BTCUSDT".
func (c *Client) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	q := url.Values{"symbol": {symbol}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pricePath+"?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build price request: %w", err)
	}

	var tp tickerPrice
	if err := c.do(req, "get price "+symbol, &tp); err != nil {
		return decimal.Zero, err
	}
	p, err := decimal.NewFromString(tp.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q for %s: %w", tp.Price, symbol, err)
	}
	return p, nil
}

func (c *Client) do(req *http.Request, op string, dst any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &TransportError{Op: op + ": decode", Err: err}
	}
	return nil
}
