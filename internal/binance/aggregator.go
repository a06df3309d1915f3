package binance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trading_dashboard/internal/logger"
	"trading_dashboard/internal/models"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const quoteAsset = "USDT"

// Assets valued at exactly 1 USD without a price lookup.
var stablecoins = map[string]bool{"USDT": true, "USDC": true, "BUSD": true}

type Options struct {
	// PriceCacheTTL of 0 disables the price cache.
	PriceCacheTTL    time.Duration
	PriceConcurrency int
	Log              *logger.Logger
}

// Aggregator values the account's balances in USD.
type Aggregator struct {
	client      *Client
	prices      *cache.Cache
	cacheTTL    time.Duration
	concurrency int
	log         *logger.Logger
}

func NewAggregator(client *Client, opts Options) *Aggregator {
	a := &Aggregator{
		client:      client,
		cacheTTL:    opts.PriceCacheTTL,
		concurrency: opts.PriceConcurrency,
		log:         opts.Log,
	}
	if a.concurrency <= 0 {
		a.concurrency = 1
	}
	if a.log == nil {
		a.log = logger.Nop()
	}
	if a.cacheTTL > 0 {
		a.prices = cache.New(a.cacheTTL, 2*a.cacheTTL)
	}
	return a
}

// GetPrice returns the last price of pair, or 0 if it cannot be fetched.
func (a *Aggregator) GetPrice(ctx context.Context, pair string) float64 {
	pair = strings.ToUpper(pair)
	if a.prices != nil {
		if v, ok := a.prices.Get(pair); ok {
			return v.(float64)
		}
	}

	p, err := a.client.Price(ctx, pair)
	if err != nil {
		a.log.Warnw("binance_price_failed", "pair", pair, "err", err)
		return 0
	}
	f := p.InexactFloat64()
	if a.prices != nil {
		a.prices.Set(pair, f, cache.DefaultExpiration)
	}
	return f
}

type heldBalance struct {
	asset        string
	free, locked decimal.Decimal
	total        decimal.Decimal
	price        float64
}

// GetPortfolio fetches the account and values every non-zero balance.
// Balance order follows the exchange's order.
func (a *Aggregator) GetPortfolio(ctx context.Context) (models.Portfolio, error) {
	info, err := a.client.Account(ctx)
	if err != nil {
		return models.Portfolio{}, err
	}

	held := make([]heldBalance, 0, len(info.Balances))
	for _, b := range info.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return models.Portfolio{}, fmt.Errorf("parse free balance of %s: %w", b.Asset, err)
		}
		locked, err := decimal.NewFromString(b.Locked)
		if err != nil {
			return models.Portfolio{}, fmt.Errorf("parse locked balance of %s: %w", b.Asset, err)
		}
		total := free.Add(locked)
		if !total.IsPositive() {
			continue
		}
		held = append(held, heldBalance{asset: b.Asset, free: free, locked: locked, total: total})
	}

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i := range held {
		if stablecoins[held[i].asset] {
			held[i].price = 1.0
			continue
		}
		i := i
		g.Go(func() error {
			held[i].price = a.GetPrice(ctx, held[i].asset+quoteAsset)
			return nil
		})
	}
	_ = g.Wait()

	accountType := info.AccountType
	if accountType == "" {
		accountType = "N/A"
	}
	p := models.Portfolio{
		AccountType: accountType,
		CanTrade:    info.CanTrade,
		CanWithdraw: info.CanWithdraw,
		CanDeposit:  info.CanDeposit,
		Balances:    make([]models.AssetBalance, 0, len(held)),
	}
	sum := decimal.Zero
	for _, h := range held {
		value := h.total.Mul(decimal.NewFromFloat(h.price))
		sum = sum.Add(value)
		p.Balances = append(p.Balances, models.AssetBalance{
			Asset:    h.asset,
			Free:     h.free.InexactFloat64(),
			Locked:   h.locked.InexactFloat64(),
			Total:    h.total.InexactFloat64(),
			USDPrice: h.price,
			USDValue: value.InexactFloat64(),
		})
	}
	p.TotalUSDValue = sum.InexactFloat64()
	return p, nil
}
