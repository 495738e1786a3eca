// Package processor joins price and moon phase series and caches the result
// for date lookups.
package processor

import (
	"sort"
	"time"

	"LunarSentinel/internal/model"
)

// Combine inner-joins price bars to moon phases on UTC calendar date.
// Duplicate phase dates resolve last-write-wins. Bars without a phase are dropped.
// Bars sharing a date are all kept, adjacent in arrival order.
func Combine(prices []model.PriceBar, moons []model.MoonPhase) []model.CombinedPoint {
	if len(prices) == 0 || len(moons) == 0 {
		return []model.CombinedPoint{}
	}

	byDate := make(map[time.Time]model.MoonPhase, len(moons))
	for _, m := range moons {
		byDate[model.DateOf(m.Date)] = m
	}

	points := make([]model.CombinedPoint, 0, len(prices))
	for _, bar := range prices {
		d := bar.Date()
		moon, ok := byDate[d]
		if !ok {
			continue
		}
		points = append(points, model.CombinedPoint{Date: d, Price: bar, Moon: moon})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}
