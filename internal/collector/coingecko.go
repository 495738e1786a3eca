package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"LunarSentinel/internal/model"
)

const (
	// DefaultCoinGeckoURL is the public CoinGecko API root.
	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

	// coinGeckoMaxDays is the free-tier window for daily market charts.
	coinGeckoMaxDays = 365

	// coinGeckoVolume stands in for volume, which the free endpoint omits.
	coinGeckoVolume = 1_000_000
)

// CoinGeckoFetcher implements Fetcher using the CoinGecko market_chart endpoint.
// Only closes are available; open/high/low are derived from the close.
type CoinGeckoFetcher struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// CoinGeckoOption configures a CoinGeckoFetcher.
type CoinGeckoOption func(*CoinGeckoFetcher)

// WithCoinGeckoBaseURL sets a custom base URL.
func WithCoinGeckoBaseURL(baseURL string) CoinGeckoOption {
	return func(f *CoinGeckoFetcher) {
		f.baseURL = baseURL
	}
}

// WithCoinGeckoHTTPClient sets a custom HTTP client.
func WithCoinGeckoHTTPClient(c *http.Client) CoinGeckoOption {
	return func(f *CoinGeckoFetcher) {
		f.client = c
	}
}

// WithCoinGeckoRateLimit sets the minimum delay between requests.
func WithCoinGeckoRateLimit(delay time.Duration) CoinGeckoOption {
	return func(f *CoinGeckoFetcher) {
		f.limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
}

// NewCoinGeckoFetcher creates a new CoinGecko fetcher.
func NewCoinGeckoFetcher(opts ...CoinGeckoOption) *CoinGeckoFetcher {
	f := &CoinGeckoFetcher{
		baseURL: DefaultCoinGeckoURL,
		client:  newHTTPClient("", 30*time.Second),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// coinGeckoChart is the response of /coins/{id}/market_chart.
type coinGeckoChart struct {
	Prices [][]float64 `json:"prices"`
}

func (f *CoinGeckoFetcher) FetchDailyBars(ctx context.Context, asset model.Asset, days int) ([]model.PriceBar, error) {
	if asset.CoinGeckoID == "" {
		return nil, errors.Errorf("coingecko: no coin id for %s", asset.Symbol)
	}
	if days <= 0 {
		return nil, errors.New("days must be > 0")
	}
	window := days
	if window > coinGeckoMaxDays {
		window = coinGeckoMaxDays
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "coingecko rate limit wait")
	}

	u := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily",
		f.baseURL, url.PathEscape(asset.CoinGeckoID), window)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "LunarSentinel/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "coingecko fetch")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "coingecko read body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart coinGeckoChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, errors.Wrap(err, "coingecko decode")
	}
	if len(chart.Prices) == 0 {
		return nil, errors.New("coingecko: no price data returned")
	}

	bars := make([]model.PriceBar, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) < 2 {
			continue
		}
		price := p[1]
		bars = append(bars, model.PriceBar{
			Time:   time.UnixMilli(int64(p[0])).UTC(),
			Open:   price * 0.999,
			High:   price * 1.001,
			Low:    price * 0.999,
			Close:  price,
			Volume: coinGeckoVolume,
			Symbol: asset.Symbol,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
