package model

import "time"

// PriceBar represents a single daily candlestick bar.
type PriceBar struct {
	Time   time.Time
	Open   float64 `validate:"gt=0"`
	High   float64 `validate:"gt=0,gtefield=Open,gtefield=Close"`
	Low    float64 `validate:"gt=0,ltefield=Open,ltefield=Close"`
	Close  float64 `validate:"gt=0"`
	Volume float64 `validate:"gte=0"`
	Symbol string
	Source string // provider that produced the bar, e.g. "bybit" or "demo"
}

// Date returns the UTC calendar date of the bar.
func (b PriceBar) Date() time.Time {
	return DateOf(b.Time)
}

// DateOf truncates t to midnight UTC.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// PriceSeries holds fetched bars for one asset.
type PriceSeries struct {
	Asset     Asset
	Bars      []PriceBar
	Source    string
	FetchedAt time.Time
}
