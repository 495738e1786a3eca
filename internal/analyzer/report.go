package analyzer

import (
	"fmt"
	"math"

	"LunarSentinel/internal/model"
)

// Summarize builds the presentation digest of a result.
func Summarize(res model.AnalysisResult) model.Summary {
	s := model.Summary{
		TotalPeriods:       res.TotalDataPoints,
		FullMoonPeriods:    res.FullMoonCount,
		NormalPeriods:      res.NormalDayCount,
		FullMoonPercentage: res.FullMoonPercentage(),
		AverageDifference:  res.Difference(),
		Interpretation:     Interpret(res),
	}
	switch s.Interpretation {
	case model.NoSignificantDifference:
		s.Text = "No significant difference in price performance between full moon and normal days."
	case model.FullMoonOutperforms:
		s.Text = fmt.Sprintf("Cryptocurrency tends to perform %.2f%% better on full moon days.", s.AverageDifference)
	default:
		s.Text = fmt.Sprintf("Cryptocurrency tends to perform %.2f%% worse on full moon days.", math.Abs(s.AverageDifference))
	}
	return s
}

// ComparePeriods names the better bucket and how many times its average exceeds
// the other's. The ratio is 0 when the other average is 0, and 1 when equal.
func ComparePeriods(res model.AnalysisResult) model.PeriodComparison {
	c := model.PeriodComparison{
		Available:   res.HasSufficientData(),
		FullMoonAvg: res.FullMoonAvgChange,
		NormalAvg:   res.NormalDayAvgChange,
		Difference:  res.Difference(),
	}
	if !c.Available {
		return c
	}
	switch {
	case c.Difference > 0:
		c.BetterPerformer = model.PerformerFullMoon
		c.PerformanceRatio = ratio(res.FullMoonAvgChange, res.NormalDayAvgChange)
	case c.Difference < 0:
		c.BetterPerformer = model.PerformerNormal
		c.PerformanceRatio = ratio(res.NormalDayAvgChange, res.FullMoonAvgChange)
	default:
		c.BetterPerformer = model.PerformerEqual
		c.PerformanceRatio = 1
	}
	return c
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// FullMoonPerformance tallies up and down moves on full-moon days.
func FullMoonPerformance(points []model.CombinedPoint) model.FullMoonPerformance {
	var perf model.FullMoonPerformance
	sum := 0.0
	for _, p := range points {
		if !p.Moon.IsFullMoon || p.PriceChange == nil {
			continue
		}
		chg := *p.PriceChange
		perf.Days++
		sum += chg
		switch {
		case chg > 0:
			perf.PositiveDays++
		case chg < 0:
			perf.NegativeDays++
		default:
			perf.NeutralDays++
		}
	}
	if perf.Days > 0 {
		perf.AvgChange = sum / float64(perf.Days)
		perf.WinRate = float64(perf.PositiveDays) / float64(perf.Days) * 100
	}
	return perf
}
