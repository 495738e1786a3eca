package model

import "strings"

// Asset describes a supported cryptocurrency.
type Asset struct {
	Name        string // display name, e.g. "Bitcoin"
	Symbol      string // exchange symbol, e.g. "BTCUSDT"
	CoinGeckoID string
	MinPrice    float64
	MaxPrice    float64
	DemoPrice   float64
}

// Assets lists the supported cryptocurrencies.
var Assets = []Asset{
	{Name: "Bitcoin", Symbol: "BTCUSDT", CoinGeckoID: "bitcoin", MinPrice: 1, MaxPrice: 1_000_000, DemoPrice: 45000},
	{Name: "Ethereum", Symbol: "ETHUSDT", CoinGeckoID: "ethereum", MinPrice: 0.1, MaxPrice: 100_000, DemoPrice: 3000},
	{Name: "Solana", Symbol: "SOLUSDT", CoinGeckoID: "solana", MinPrice: 0.01, MaxPrice: 10_000, DemoPrice: 100},
}

// LookupAsset finds an asset by name, symbol or CoinGecko id, case-insensitively.
func LookupAsset(key string) (Asset, bool) {
	key = strings.TrimSpace(key)
	for _, a := range Assets {
		if strings.EqualFold(a.Name, key) || strings.EqualFold(a.Symbol, key) || strings.EqualFold(a.CoinGeckoID, key) {
			return a, true
		}
	}
	return Asset{}, false
}

// InRange reports whether price is plausible for the asset.
func (a Asset) InRange(price float64) bool {
	if a.MaxPrice == 0 {
		return price > 0
	}
	return price >= a.MinPrice && price <= a.MaxPrice
}
