package collector

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"LunarSentinel/internal/model"
)

// barValidator checks the struct tags on model.PriceBar.
var barValidator = validator.New()

// ValidateBar checks prices are positive, volume is non-negative, low and high
// bracket open and close, and the close is plausible for the asset.
func ValidateBar(bar model.PriceBar, asset model.Asset) error {
	if bar.Time.IsZero() {
		return fmt.Errorf("bar has no timestamp")
	}
	if err := barValidator.Struct(bar); err != nil {
		return err
	}
	if !asset.InRange(bar.Close) {
		return fmt.Errorf("close %.4f outside plausible range [%g, %g] for %s",
			bar.Close, asset.MinPrice, asset.MaxPrice, asset.Name)
	}
	return nil
}

// Normalize drops invalid bars, keeps one bar per calendar date (the latest
// timestamp wins), sorts ascending and keeps at most maxPoints of the newest.
// The returned slice lists the reason for each dropped bar.
func Normalize(bars []model.PriceBar, asset model.Asset, maxPoints int) ([]model.PriceBar, []string) {
	var rejected []string
	byDate := make(map[time.Time]model.PriceBar, len(bars))
	for _, b := range bars {
		if err := ValidateBar(b, asset); err != nil {
			rejected = append(rejected, fmt.Sprintf("%s: %v", b.Time.Format("2006-01-02"), err))
			continue
		}
		d := b.Date()
		if prev, ok := byDate[d]; ok && prev.Time.After(b.Time) {
			continue
		}
		byDate[d] = b
	}

	out := make([]model.PriceBar, 0, len(byDate))
	for _, b := range byDate {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	if maxPoints > 0 && len(out) > maxPoints {
		out = out[len(out)-maxPoints:]
	}
	return out, rejected
}
