package model

import "time"

// MoonPhase is the computed lunar state for one calendar date.
type MoonPhase struct {
	Date          time.Time
	Illumination  float64 // percent, 0 = new moon, 100 = full moon
	CyclePosition float64 // fraction of the synodic month elapsed, [0, 1)
	IsFullMoon    bool
}

// PhaseName returns the conventional name of the phase.
func (m MoonPhase) PhaseName() string {
	p := m.CyclePosition
	switch {
	case p < 0.0625 || p >= 0.9375:
		return "New Moon"
	case p < 0.1875:
		return "Waxing Crescent"
	case p < 0.3125:
		return "First Quarter"
	case p < 0.4375:
		return "Waxing Gibbous"
	case p < 0.5625:
		return "Full Moon"
	case p < 0.6875:
		return "Waning Gibbous"
	case p < 0.8125:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}
