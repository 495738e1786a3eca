package calculator

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"LunarSentinel/internal/config"
	"LunarSentinel/internal/model"
)

const (
	// DefaultSynodicMonthDays is the mean length of a lunation.
	DefaultSynodicMonthDays = 29.530588853
	// DefaultFullMoonThreshold is the illumination above which a day counts as full moon.
	DefaultFullMoonThreshold = 98.0
)

// DefaultReferenceNewMoon is a known new moon: 2000-01-06 18:14 UTC.
var DefaultReferenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// ErrInvalidInput is returned for dates the phase model cannot evaluate.
var ErrInvalidInput = errors.New("invalid input")

// PhaseCalculator computes moon illumination with a triangular approximation
// over the synodic cycle. It is stateless and safe for concurrent use.
type PhaseCalculator struct {
	ReferenceNewMoon  time.Time
	SynodicMonthDays  float64
	FullMoonThreshold float64
	logger            *zap.Logger
}

// NewPhaseCalculator creates a calculator from lunar config.
func NewPhaseCalculator(cfg config.Lunar, logger *zap.Logger) (*PhaseCalculator, error) {
	ref, err := cfg.ReferenceTime()
	if err != nil {
		return nil, errors.Wrap(err, "parse reference new moon")
	}
	if cfg.SynodicMonthDays <= 0 {
		return nil, errors.Errorf("synodic month must be positive, got %v", cfg.SynodicMonthDays)
	}
	return &PhaseCalculator{
		ReferenceNewMoon:  ref,
		SynodicMonthDays:  cfg.SynodicMonthDays,
		FullMoonThreshold: cfg.FullMoonThreshold,
		logger:            logger,
	}, nil
}

// DefaultPhaseCalculator returns a calculator with the standard constants.
func DefaultPhaseCalculator(logger *zap.Logger) *PhaseCalculator {
	return &PhaseCalculator{
		ReferenceNewMoon:  DefaultReferenceNewMoon,
		SynodicMonthDays:  DefaultSynodicMonthDays,
		FullMoonThreshold: DefaultFullMoonThreshold,
		logger:            logger,
	}
}

// Compute returns the moon phase at instant t, labelled with t's calendar date.
// Callers wanting one value per day pass midnight UTC, as Dates does.
func (c *PhaseCalculator) Compute(t time.Time) (model.MoonPhase, error) {
	if t.IsZero() {
		return model.MoonPhase{}, errors.Wrap(ErrInvalidInput, "zero date")
	}
	date := model.DateOf(t)

	days := float64(t.Unix()-c.ReferenceNewMoon.Unix()) / 86400
	cycles := days / c.SynodicMonthDays
	pos := cycles - math.Floor(cycles)
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return model.MoonPhase{}, errors.Wrapf(ErrInvalidInput, "cycle position for %s", date.Format("2006-01-02"))
	}

	var illum float64
	if pos <= 0.5 {
		illum = pos * 200
	} else {
		illum = (1 - pos) * 200
	}
	illum = math.Max(0, math.Min(100, illum))

	return model.MoonPhase{
		Date:          date,
		Illumination:  illum,
		CyclePosition: pos,
		IsFullMoon:    illum > c.FullMoonThreshold,
	}, nil
}

// ComputeMany computes phases for each date, skipping dates that fail.
func (c *PhaseCalculator) ComputeMany(dates []time.Time) []model.MoonPhase {
	phases := make([]model.MoonPhase, 0, len(dates))
	for _, d := range dates {
		p, err := c.Compute(d)
		if err != nil {
			c.logger.Warn("moon phase calculation skipped", zap.Time("date", d), zap.Error(err))
			continue
		}
		phases = append(phases, p)
	}
	return phases
}

// Dates returns every calendar date from from to to, inclusive.
func Dates(from, to time.Time) []time.Time {
	start, end := model.DateOf(from), model.DateOf(to)
	if end.Before(start) {
		return nil
	}
	dates := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// NextFullMoon returns the first date on or after t whose phase is a full moon.
// It searches at most two synodic months.
func (c *PhaseCalculator) NextFullMoon(t time.Time) (model.MoonPhase, bool) {
	limit := int(2*c.SynodicMonthDays) + 1
	d := model.DateOf(t)
	for i := 0; i <= limit; i++ {
		p, err := c.Compute(d.AddDate(0, 0, i))
		if err == nil && p.IsFullMoon {
			return p, true
		}
	}
	return model.MoonPhase{}, false
}
