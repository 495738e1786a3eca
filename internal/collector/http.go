package collector

import (
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"LunarSentinel/internal/model"
)

// newHTTPClient returns a client with the given timeout and optional proxy.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// parsePrice converts an exchange decimal string to float64.
func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// parseBar parses exchange OHLCV strings into a bar without time or symbol.
func parseBar(open, high, low, close, volume string) (model.PriceBar, error) {
	var bar model.PriceBar
	var err error
	if bar.Open, err = parsePrice(open); err != nil {
		return bar, errors.Wrapf(err, "parse open price %q", open)
	}
	if bar.High, err = parsePrice(high); err != nil {
		return bar, errors.Wrapf(err, "parse high price %q", high)
	}
	if bar.Low, err = parsePrice(low); err != nil {
		return bar, errors.Wrapf(err, "parse low price %q", low)
	}
	if bar.Close, err = parsePrice(close); err != nil {
		return bar, errors.Wrapf(err, "parse close price %q", close)
	}
	if bar.Volume, err = parsePrice(volume); err != nil {
		return bar, errors.Wrapf(err, "parse volume %q", volume)
	}
	return bar, nil
}
