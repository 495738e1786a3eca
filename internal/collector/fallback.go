package collector

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"LunarSentinel/internal/model"
)

// FallbackFetcher tries each fetcher in order, retrying with backoff, and tags
// every returned bar with the name of the fetcher that produced it. A fetcher
// whose bars all fail validation counts as failed and the next one is tried.
type FallbackFetcher struct {
	fetchers   []Fetcher
	maxRetries int
	retryMin   time.Duration
	retryMax   time.Duration
	logger     *zap.Logger
}

// NewFallbackFetcher creates a chain over fetchers. maxRetries is per fetcher.
func NewFallbackFetcher(fetchers []Fetcher, maxRetries int, logger *zap.Logger) *FallbackFetcher {
	return &FallbackFetcher{
		fetchers:   fetchers,
		maxRetries: maxRetries,
		retryMin:   500 * time.Millisecond,
		retryMax:   10 * time.Second,
		logger:     logger,
	}
}

func (f *FallbackFetcher) Name() string { return "fallback" }

// Fetchers returns the chain in priority order.
func (f *FallbackFetcher) Fetchers() []Fetcher { return f.fetchers }

func (f *FallbackFetcher) FetchDailyBars(ctx context.Context, asset model.Asset, days int) ([]model.PriceBar, error) {
	if len(f.fetchers) == 0 {
		return nil, errors.New("no fetchers configured")
	}

	var lastErr error
	for _, fetcher := range f.fetchers {
		bars, err := f.fetchWithRetry(ctx, fetcher, asset, days)
		if err == nil {
			bars, err = f.validBars(fetcher.Name(), bars, asset)
		}
		if err == nil {
			for i := range bars {
				bars[i].Source = fetcher.Name()
			}
			f.logger.Info("fetched daily bars",
				zap.String("source", fetcher.Name()),
				zap.String("symbol", asset.Symbol),
				zap.Int("bars", len(bars)))
			return bars, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Warn("data source failed, trying next",
			zap.String("source", fetcher.Name()),
			zap.String("symbol", asset.Symbol),
			zap.Error(err))
		lastErr = err
	}
	return nil, errors.Wrapf(lastErr, "all %d data sources failed for %s", len(f.fetchers), asset.Symbol)
}

func (f *FallbackFetcher) fetchWithRetry(ctx context.Context, fetcher Fetcher, asset model.Asset, days int) ([]model.PriceBar, error) {
	b := &backoff.Backoff{Min: f.retryMin, Max: f.retryMax, Factor: 2, Jitter: true}
	for {
		bars, err := fetcher.FetchDailyBars(ctx, asset, days)
		if err == nil && len(bars) > 0 {
			return bars, nil
		}
		if err == nil {
			err = errors.Errorf("%s returned no bars", fetcher.Name())
		}
		if int(b.Attempt()) >= f.maxRetries {
			return nil, err
		}
		wait := b.Duration()
		f.logger.Debug("retrying data source",
			zap.String("source", fetcher.Name()),
			zap.Duration("backoff", wait),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// validBars drops bars that fail validation and errors when none are left.
func (f *FallbackFetcher) validBars(source string, bars []model.PriceBar, asset model.Asset) ([]model.PriceBar, error) {
	valid, rejected := Normalize(bars, asset, 0)
	for _, r := range rejected {
		f.logger.Warn("invalid price bar dropped",
			zap.String("source", source),
			zap.String("symbol", asset.Symbol),
			zap.String("reason", r))
	}
	if len(valid) == 0 {
		return nil, errors.Errorf("all %d bars from %s failed validation", len(bars), source)
	}
	return valid, nil
}
