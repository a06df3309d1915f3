package binance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(t *testing.T, baseURL string, ttl time.Duration) *Aggregator {
	return NewAggregator(newTestClient(t, baseURL, time.Second), Options{PriceCacheTTL: ttl, PriceConcurrency: 3})
}

func TestAggregator_GetPortfolio(t *testing.T) {
	f, srv := newFakeExchange(t)
	f.account = AccountInfo{
		AccountType: "SPOT",
		CanTrade:    true,
		CanDeposit:  true,
		Balances: []RawBalance{
			{Asset: "BTC", Free: "0.5", Locked: "0.25"},
			{Asset: "ZERO", Free: "0.00000000", Locked: "0.00000000"},
			{Asset: "USDT", Free: "100", Locked: "0"},
			{Asset: "ETH", Free: "0", Locked: "2"},
			{Asset: "BUSD", Free: "10", Locked: "0"},
		},
	}
	f.prices["BTCUSDT"] = "40000"
	f.prices["ETHUSDT"] = "2500.5"
	a := newTestAggregator(t, srv.URL, 0)

	p, err := a.GetPortfolio(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "SPOT", p.AccountType)
	assert.True(t, p.CanTrade)
	assert.False(t, p.CanWithdraw)
	assert.True(t, p.CanDeposit)

	require.Len(t, p.Balances, 4)
	assets := []string{p.Balances[0].Asset, p.Balances[1].Asset, p.Balances[2].Asset, p.Balances[3].Asset}
	assert.Equal(t, []string{"BTC", "USDT", "ETH", "BUSD"}, assets)

	btc := p.Balances[0]
	assert.Equal(t, 0.5, btc.Free)
	assert.Equal(t, 0.25, btc.Locked)
	assert.Equal(t, 0.75, btc.Total)
	assert.Equal(t, 40000.0, btc.USDPrice)
	assert.Equal(t, 30000.0, btc.USDValue)

	assert.Equal(t, 1.0, p.Balances[1].USDPrice)
	assert.Equal(t, 100.0, p.Balances[1].USDValue)
	assert.Equal(t, 5001.0, p.Balances[2].USDValue)

	assert.InDelta(t, 30000+100+5001+10, p.TotalUSDValue, 1e-9)

	for _, stable := range []string{"USDTUSDT", "USDCUSDT", "BUSDUSDT"} {
		assert.Zero(t, f.hits(stable), "stablecoin %s looked up", stable)
	}
	assert.Zero(t, f.hits("ZEROUSDT"))
}

func TestAggregator_FailedPriceZeroesOnlyThatAsset(t *testing.T) {
	f, srv := newFakeExchange(t)
	f.account = AccountInfo{Balances: []RawBalance{
		{Asset: "BTC", Free: "1", Locked: "0"},
		{Asset: "DOGE", Free: "1000", Locked: "0"},
		{Asset: "USDC", Free: "5", Locked: "0"},
	}}
	f.prices["BTCUSDT"] = "100"
	a := newTestAggregator(t, srv.URL, 0)

	p, err := a.GetPortfolio(context.Background())
	require.NoError(t, err)
	require.Len(t, p.Balances, 3)

	assert.Equal(t, "N/A", p.AccountType)
	assert.Equal(t, "DOGE", p.Balances[1].Asset)
	assert.Zero(t, p.Balances[1].USDPrice)
	assert.Zero(t, p.Balances[1].USDValue)
	assert.Equal(t, 1000.0, p.Balances[1].Total)
	assert.Equal(t, 105.0, p.TotalUSDValue)
}

func TestAggregator_UpstreamErrorPropagates(t *testing.T) {
	f, srv := newFakeExchange(t)
	f.status = 418
	a := newTestAggregator(t, srv.URL, 0)

	_, err := a.GetPortfolio(context.Background())
	var ue *UpstreamError
	assert.ErrorAs(t, err, &ue)
}

func TestAggregator_GetPriceFailSoftAndCached(t *testing.T) {
	f, srv := newFakeExchange(t)
	f.prices["SOLUSDT"] = "150.25"
	a := newTestAggregator(t, srv.URL, time.Minute)

	assert.Equal(t, 150.25, a.GetPrice(context.Background(), "solusdt"))
	assert.Equal(t, 150.25, a.GetPrice(context.Background(), "SOLUSDT"))
	assert.Equal(t, 1, f.hits("SOLUSDT"))

	assert.Zero(t, a.GetPrice(context.Background(), "NOPEUSDT"))
	// failures are not cached
	assert.Zero(t, a.GetPrice(context.Background(), "NOPEUSDT"))
	assert.Equal(t, 2, f.hits("NOPEUSDT"))
}

func TestAggregator_GetPriceNoCache(t *testing.T) {
	f, srv := newFakeExchange(t)
	f.prices["SOLUSDT"] = "1"
	a := newTestAggregator(t, srv.URL, 0)

	a.GetPrice(context.Background(), "SOLUSDT")
	a.GetPrice(context.Background(), "SOLUSDT")
	assert.Equal(t, 2, f.hits("SOLUSDT"))
}

func TestAggregator_GetPriceUnreachable(t *testing.T) {
	a := newTestAggregator(t, "http://127.0.0.1:1", 0)
	assert.Zero(t, a.GetPrice(context.Background(), "BTCUSDT"))
}
