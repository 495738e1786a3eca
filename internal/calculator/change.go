package calculator

import (
	"sort"

	"LunarSentinel/internal/model"
)

// AnnotateChanges returns a date-ascending copy of points with PriceChange set to
// the percent change from the previous point's close. The first point, and any
// point whose predecessor closed at zero, get a nil change.
func AnnotateChanges(points []model.CombinedPoint) []model.CombinedPoint {
	out := make([]model.CombinedPoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	var prev *float64
	for i := range out {
		out[i].PriceChange = nil
		if prev != nil && *prev != 0 {
			chg := PercentChange(*prev, out[i].Price.Close)
			out[i].PriceChange = &chg
		}
		c := out[i].Price.Close
		prev = &c
	}
	return out
}

// PercentChange returns (cur-prev)/prev*100. prev must be nonzero.
func PercentChange(prev, cur float64) float64 {
	return (cur - prev) / prev * 100
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
