package collector

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"LunarSentinel/internal/config"
	"LunarSentinel/internal/model"
)

// Collector fetches and cleans daily price series.
type Collector struct {
	Fetcher   Fetcher
	MaxPoints int
	logger    *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, maxPoints int, logger *zap.Logger) *Collector {
	return &Collector{Fetcher: fetcher, MaxPoints: maxPoints, logger: logger}
}

// Collect fetches days of bars for asset and normalizes them. Bars rejected by
// validation are logged and dropped.
func (c *Collector) Collect(ctx context.Context, asset model.Asset, days int) (model.PriceSeries, error) {
	series := model.PriceSeries{Asset: asset, FetchedAt: time.Now()}

	raw, err := c.Fetcher.FetchDailyBars(ctx, asset, days)
	if err != nil {
		return series, errors.Wrapf(err, "fetch daily bars for %s", asset.Symbol)
	}

	bars, rejected := Normalize(raw, asset, c.MaxPoints)
	for _, r := range rejected {
		c.logger.Warn("invalid price bar dropped", zap.String("symbol", asset.Symbol), zap.String("reason", r))
	}
	if len(bars) == 0 {
		return series, errors.Errorf("no valid bars for %s", asset.Symbol)
	}

	series.Bars = bars
	series.Source = bars[len(bars)-1].Source
	return series, nil
}

// NewFetcherFromConfig builds the provider chain named in cfg.Providers.
func NewFetcherFromConfig(cfg config.DataSource, proxy string, logger *zap.Logger) (*FallbackFetcher, error) {
	fetchers := make([]Fetcher, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		switch name {
		case "bybit":
			fetchers = append(fetchers, NewBybitFetcher(cfg.BybitAPIKey, cfg.BybitAPISecret, proxy, cfg.Timeout, cfg.RateLimitDelay))
		case "binance":
			fetchers = append(fetchers, NewBinanceFetcher(cfg.BinanceAPIKey, cfg.BinanceAPISecret, proxy, cfg.Timeout, cfg.RateLimitDelay))
		case "coingecko":
			fetchers = append(fetchers, NewCoinGeckoFetcher(
				WithCoinGeckoBaseURL(cfg.CoinGeckoBaseURL),
				WithCoinGeckoHTTPClient(newHTTPClient(proxy, cfg.Timeout)),
			))
		case "demo":
			fetchers = append(fetchers, NewDemoFetcher())
		default:
			return nil, errors.Errorf("unknown provider %q", name)
		}
	}
	return NewFallbackFetcher(fetchers, cfg.MaxRetries, logger), nil
}
