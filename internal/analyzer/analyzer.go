// Package analyzer compares price changes on full-moon days with normal days.
package analyzer

import (
	"math"

	"go.uber.org/zap"

	"LunarSentinel/internal/calculator"
	"LunarSentinel/internal/model"
)

// SignificanceThreshold is the absolute difference, in percentage points, below
// which the buckets are reported as equal. It is a fixed heuristic.
const SignificanceThreshold = 0.1

// sparseNormalDays is the normal-day count under which results are flagged as noisy.
const sparseNormalDays = 10

// Analyzer partitions combined points into full-moon and normal buckets.
type Analyzer struct {
	MinBucketSize int
	logger        *zap.Logger
}

// New creates an Analyzer. minBucketSize below 1 is raised to 1.
func New(minBucketSize int, logger *zap.Logger) *Analyzer {
	if minBucketSize < 1 {
		minBucketSize = 1
	}
	return &Analyzer{MinBucketSize: minBucketSize, logger: logger}
}

// Analyze averages price changes per bucket. Points without a change are ignored.
func (a *Analyzer) Analyze(points []model.CombinedPoint) model.AnalysisResult {
	if len(points) == 0 {
		a.logger.Info("no data points to analyze")
		return model.AnalysisResult{}
	}

	var full, normal []float64
	for _, p := range points {
		if p.PriceChange == nil {
			continue
		}
		if p.Moon.IsFullMoon {
			full = append(full, *p.PriceChange)
		} else {
			normal = append(normal, *p.PriceChange)
		}
	}

	res := model.AnalysisResult{
		FullMoonAvgChange:  calculator.Mean(full),
		NormalDayAvgChange: calculator.Mean(normal),
		FullMoonCount:      len(full),
		NormalDayCount:     len(normal),
		TotalDataPoints:    len(full) + len(normal),
	}
	a.logger.Info("correlation analysis complete",
		zap.Int("full_moon_days", res.FullMoonCount),
		zap.Int("normal_days", res.NormalDayCount),
		zap.Float64("difference", res.Difference()))
	return res
}

// Interpret classifies the difference between the two buckets.
func Interpret(res model.AnalysisResult) model.Interpretation {
	diff := res.Difference()
	switch {
	case math.Abs(diff) < SignificanceThreshold:
		return model.NoSignificantDifference
	case diff > 0:
		return model.FullMoonOutperforms
	default:
		return model.NormalDaysOutperform
	}
}
