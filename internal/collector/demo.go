package collector

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"LunarSentinel/internal/model"
)

// DemoFetcher generates a reproducible synthetic random walk. It is the last
// resort when every live provider fails.
type DemoFetcher struct {
	Now func() time.Time
}

// NewDemoFetcher creates a demo fetcher anchored at the wall clock.
func NewDemoFetcher() *DemoFetcher {
	return &DemoFetcher{Now: time.Now}
}

func (m *DemoFetcher) Name() string { return "demo" }

func (m *DemoFetcher) FetchDailyBars(_ context.Context, asset model.Asset, days int) ([]model.PriceBar, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return generateDemoBars(asset, days, model.DateOf(now())), nil
}

func generateDemoBars(asset model.Asset, count int, end time.Time) []model.PriceBar {
	if count <= 0 {
		return nil
	}
	h := fnv.New64a()
	h.Write([]byte(asset.Symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	base := asset.DemoPrice
	if base <= 0 {
		base = 1000
	}

	bars := make([]model.PriceBar, count)
	price := base
	for i := 0; i < count; i++ {
		price *= 1 + (rng.Float64()*0.10 - 0.05)
		if asset.MaxPrice > 0 {
			price = clamp(price, asset.MinPrice*2, asset.MaxPrice/2)
		}
		open := price * (0.995 + rng.Float64()*0.01)
		high := max(open, price) * (1 + rng.Float64()*0.02)
		low := min(open, price) * (0.98 + rng.Float64()*0.02)
		bars[i] = model.PriceBar{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: 500_000 + rng.Float64()*1_500_000,
			Symbol: asset.Symbol,
		}
	}
	return bars
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
