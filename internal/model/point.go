package model

import "time"

// CombinedPoint joins a price bar with the moon phase of the same date.
type CombinedPoint struct {
	Date        time.Time
	Price       PriceBar
	Moon        MoonPhase
	PriceChange *float64 // percent change vs the previous point's close; nil when not computable
}

// HasChange reports whether the day-over-day change was computed.
func (p CombinedPoint) HasChange() bool { return p.PriceChange != nil }

// DataSummary describes a cached point sequence.
type DataSummary struct {
	TotalPoints      int
	FullMoonDays     int
	PointsWithChange int
	From             time.Time
	To               time.Time
	MinClose         float64
	MaxClose         float64
	AvgClose         float64
	AvgChange        float64
}
