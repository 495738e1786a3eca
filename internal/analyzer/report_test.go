package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"LunarSentinel/internal/model"
)

func TestSummarize(t *testing.T) {
	s := Summarize(model.AnalysisResult{FullMoonAvgChange: 1.5, NormalDayAvgChange: 0.25, FullMoonCount: 2, NormalDayCount: 8, TotalDataPoints: 10})
	assert.Equal(t, 10, s.TotalPeriods)
	assert.InDelta(t, 20.0, s.FullMoonPercentage, 1e-9)
	assert.Equal(t, model.FullMoonOutperforms, s.Interpretation)
	assert.Equal(t, "Cryptocurrency tends to perform 1.25% better on full moon days.", s.Text)

	s = Summarize(model.AnalysisResult{FullMoonAvgChange: -1, NormalDayAvgChange: 0.5})
	assert.Equal(t, "Cryptocurrency tends to perform 1.50% worse on full moon days.", s.Text)

	s = Summarize(model.AnalysisResult{})
	assert.Equal(t, model.NoSignificantDifference, s.Interpretation)
}

func TestComparePeriods(t *testing.T) {
	tests := []struct {
		name      string
		res       model.AnalysisResult
		available bool
		better    model.Performer
		ratio     float64
	}{
		{"full moon better", model.AnalysisResult{FullMoonAvgChange: 4, NormalDayAvgChange: 2, FullMoonCount: 1, NormalDayCount: 1}, true, model.PerformerFullMoon, 2},
		{"normal better", model.AnalysisResult{FullMoonAvgChange: 1, NormalDayAvgChange: 3, FullMoonCount: 1, NormalDayCount: 1}, true, model.PerformerNormal, 3},
		{"zero denominator", model.AnalysisResult{FullMoonAvgChange: 1, NormalDayAvgChange: 0, FullMoonCount: 1, NormalDayCount: 1}, true, model.PerformerFullMoon, 0},
		{"equal", model.AnalysisResult{FullMoonAvgChange: 1, NormalDayAvgChange: 1, FullMoonCount: 1, NormalDayCount: 1}, true, model.PerformerEqual, 1},
		{"insufficient", model.AnalysisResult{NormalDayCount: 3}, false, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ComparePeriods(tt.res)
			assert.Equal(t, tt.available, c.Available)
			assert.Equal(t, tt.better, c.BetterPerformer)
			assert.InDelta(t, tt.ratio, c.PerformanceRatio, 1e-9)
		})
	}
}

func TestFullMoonPerformance(t *testing.T) {
	points := []model.CombinedPoint{
		pt(1, true, nil),
		pt(2, true, f(2)),
		pt(3, true, f(-1)),
		pt(4, true, f(0)),
		pt(5, false, f(9)),
		pt(6, true, f(3)),
	}
	perf := FullMoonPerformance(points)
	assert.Equal(t, 4, perf.Days)
	assert.Equal(t, 2, perf.PositiveDays)
	assert.Equal(t, 1, perf.NegativeDays)
	assert.Equal(t, 1, perf.NeutralDays)
	assert.InDelta(t, 1.0, perf.AvgChange, 1e-9)
	assert.InDelta(t, 50.0, perf.WinRate, 1e-9)

	assert.Equal(t, model.FullMoonPerformance{}, FullMoonPerformance(nil))
}
