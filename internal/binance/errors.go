package binance

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials means the API key or secret is not configured.
var ErrMissingCredentials = errors.New("binance API key and secret are required")

// UpstreamError is a non-2xx answer from the exchange. Body is kept for logs only.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("binance: upstream status %d", e.StatusCode)
}

// TransportError wraps network failures and timeouts.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("binance: %s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }
