package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

// Signer produces HMAC-SHA256 signed query strings for private endpoints.
type Signer struct {
	apiKey string
	secret []byte
}

func NewSigner(apiKey, secret string) (*Signer, error) {
	if apiKey == "" || secret == "" {
		return nil, ErrMissingCredentials
	}
	return &Signer{apiKey: apiKey, secret: []byte(secret)}, nil
}

// APIKey is sent in the X-MBX-APIKEY header.
func (s *Signer) APIKey() string { return s.apiKey }

// Sign adds timestamp (epoch ms at now) to a copy of params and returns
// "<query>&signature=<hex hmac>". params is not modified.
func (s *Signer) Sign(params url.Values, now time.Time) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	q.Set("timestamp", strconv.FormatInt(now.UnixMilli(), 10))

	query := q.Encode()
	return query + "&signature=" + s.signature(query)
}

func (s *Signer) signature(query string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}
