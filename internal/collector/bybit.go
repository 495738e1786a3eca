package collector

import (
	"context"
	"sort"
	"strconv"
	"time"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"LunarSentinel/internal/model"
)

// bybitMaxLimit is the largest page the V5 kline endpoint serves.
const bybitMaxLimit = 1000

// BybitFetcher implements Fetcher using Bybit V5 linear daily klines.
type BybitFetcher struct {
	client  *bybit.Client
	limiter *rate.Limiter
}

// NewBybitFetcher creates a fetcher. Credentials are optional for market data.
func NewBybitFetcher(apiKey, apiSecret, proxyURL string, timeout, rateDelay time.Duration) *BybitFetcher {
	client := bybit.NewClient().WithHTTPClient(newHTTPClient(proxyURL, timeout))
	if apiKey != "" {
		client = client.WithAuth(apiKey, apiSecret)
	}
	return &BybitFetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(rateDelay), 1),
	}
}

func (f *BybitFetcher) Name() string { return "bybit" }

func (f *BybitFetcher) FetchDailyBars(ctx context.Context, asset model.Asset, days int) ([]model.PriceBar, error) {
	if days <= 0 {
		return nil, errors.New("days must be > 0")
	}
	if days > bybitMaxLimit {
		days = bybitMaxLimit
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "bybit rate limit wait")
	}

	param := bybit.V5GetKlineParam{
		Category: bybit.CategoryV5Linear,
		Symbol:   bybit.SymbolV5(asset.Symbol),
		Interval: bybit.Interval("D"),
		Limit:    &days,
	}
	result, err := f.client.V5().Market().GetKline(param)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch klines from Bybit for %s", asset.Symbol)
	}
	if result == nil || len(result.Result.List) == 0 {
		return nil, errors.Errorf("no kline data returned from Bybit for %s", asset.Symbol)
	}

	bars := make([]model.PriceBar, 0, len(result.Result.List))
	for i, k := range result.Result.List {
		bar, err := bybitBar(k, asset.Symbol)
		if err != nil {
			return nil, errors.Wrapf(err, "bybit kline at index %d", i)
		}
		bars = append(bars, bar)
	}

	// Bybit lists newest first.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func bybitBar(k bybit.V5GetKlineItem, symbol string) (model.PriceBar, error) {
	ms, err := strconv.ParseInt(k.StartTime, 10, 64)
	if err != nil {
		return model.PriceBar{}, errors.Wrapf(err, "parse start time %q", k.StartTime)
	}
	bar, err := parseBar(k.Open, k.High, k.Low, k.Close, k.Volume)
	if err != nil {
		return model.PriceBar{}, err
	}
	bar.Time = time.UnixMilli(ms).UTC()
	bar.Symbol = symbol
	return bar, nil
}
