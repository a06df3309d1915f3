package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	testKey    = "test-key"
	testSecret = "test-secret"
)

// fakeExchange serves /api/v3/account and /api/v3/ticker/price.
type fakeExchange struct {
	t        *testing.T
	account  AccountInfo
	prices   map[string]string
	status   int
	delay    time.Duration
	mu       sync.Mutex
	priceHit map[string]int
	lastAcct *http.Request
}

func newFakeExchange(t *testing.T) (*fakeExchange, *httptest.Server) {
	f := &fakeExchange{t: t, prices: map[string]string{}, priceHit: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeExchange) serve(w http.ResponseWriter, r *http.Request) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	switch r.URL.Path {
	case accountPath:
		f.mu.Lock()
		f.lastAcct = r
		f.mu.Unlock()
		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"code":-2015,"msg":"Invalid API-key"}`))
			return
		}
		if r.Header.Get(apiKeyHdr) != testKey || !validSignature(r.URL.RawQuery) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(f.account)
	case pricePath:
		sym := r.URL.Query().Get("symbol")
		f.mu.Lock()
		f.priceHit[sym]++
		f.mu.Unlock()
		p, ok := f.prices[sym]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
			return
		}
		_ = json.NewEncoder(w).Encode(tickerPrice{Symbol: sym, Price: p})
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeExchange) hits(sym string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.priceHit[sym]
}

func validSignature(rawQuery string) bool {
	i := strings.LastIndex(rawQuery, "&signature=")
	if i < 0 {
		return false
	}
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(rawQuery[:i]))
	return hmac.Equal([]byte(hex.EncodeToString(mac.Sum(nil))), []byte(rawQuery[i+len("&signature="):]))
}
