package collector

import (
	"context"

	"LunarSentinel/internal/model"
)

// Fetcher defines the interface for fetching daily price bars.
type Fetcher interface {
	// FetchDailyBars returns up to days of the most recent daily bars.
	FetchDailyBars(ctx context.Context, asset model.Asset, days int) ([]model.PriceBar, error)
	Name() string
}
