package collector

import (
	"context"
	"sort"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"LunarSentinel/internal/model"
)

const binanceMaxLimit = 1000

// BinanceFetcher implements Fetcher using Binance spot daily klines.
type BinanceFetcher struct {
	client  *binance.Client
	limiter *rate.Limiter
}

// NewBinanceFetcher creates a fetcher. Credentials are optional for market data.
func NewBinanceFetcher(apiKey, apiSecret, proxyURL string, timeout, rateDelay time.Duration) *BinanceFetcher {
	client := binance.NewClient(apiKey, apiSecret)
	client.HTTPClient = newHTTPClient(proxyURL, timeout)
	return &BinanceFetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(rateDelay), 1),
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) FetchDailyBars(ctx context.Context, asset model.Asset, days int) ([]model.PriceBar, error) {
	if days <= 0 {
		return nil, errors.New("days must be > 0")
	}
	if days > binanceMaxLimit {
		days = binanceMaxLimit
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "binance rate limit wait")
	}

	klines, err := f.client.NewKlinesService().
		Symbol(asset.Symbol).
		Interval("1d").
		Limit(days).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch klines from Binance for %s", asset.Symbol)
	}
	if len(klines) == 0 {
		return nil, errors.Errorf("no kline data returned from Binance for %s", asset.Symbol)
	}

	bars := make([]model.PriceBar, 0, len(klines))
	for i, k := range klines {
		bar, err := parseBar(k.Open, k.High, k.Low, k.Close, k.Volume)
		if err != nil {
			return nil, errors.Wrapf(err, "binance kline at index %d", i)
		}
		bar.Time = time.UnixMilli(k.OpenTime).UTC()
		bar.Symbol = asset.Symbol
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
