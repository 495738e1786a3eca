package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"LunarSentinel/internal/analyzer"
	"LunarSentinel/internal/model"
)

func sampleReport() *model.Report {
	btc, _ := model.LookupAsset("Bitcoin")
	res := model.AnalysisResult{FullMoonAvgChange: 1.25, NormalDayAvgChange: -0.5, FullMoonCount: 4, NormalDayCount: 6, TotalDataPoints: 10}
	return &model.Report{
		RunID:       "run-1",
		Asset:       btc,
		Source:      "demo",
		GeneratedAt: time.Date(2024, 6, 30, 8, 0, 0, 0, time.UTC),
		Result:      res,
		Summary:     analyzer.Summarize(res),
		Comparison:  analyzer.ComparePeriods(res),
		FullMoon:    model.FullMoonPerformance{Days: 4, PositiveDays: 3, NegativeDays: 1, AvgChange: 1.25, WinRate: 75},
		Diagnostics: []model.Diagnostic{{Kind: model.DiagnosticInfo, Message: "Only 6 normal day(s) found", Suggestion: "Consider a longer time period."}},
		DataSummary: model.DataSummary{
			TotalPoints: 11,
			From:        time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
			To:          time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestFormatReport(t *testing.T) {
	msg := FormatReport(sampleReport())

	assert.Contains(t, msg, "<b>Bitcoin Lunar Report</b> | 2024-06-30")
	assert.Contains(t, msg, "Source: demo (simulated data)")
	assert.Contains(t, msg, "Period: 2024-06-20 → 2024-06-30 (11 days)")
	assert.Contains(t, msg, "Full moon: +1.25% (4 days)")
	assert.Contains(t, msg, "Normal:    -0.50% (6 days)")
	assert.Contains(t, msg, "Difference: +1.75%")
	assert.Contains(t, msg, "Full moon share: 40.0%")
	assert.Contains(t, msg, "win rate: 75.0% (3 up / 1 down / 0 flat)")
	assert.Contains(t, msg, "Better performer: full moon days (ratio -2.50)")
	assert.Contains(t, msg, "perform 1.75% better on full moon days")
	assert.Contains(t, msg, "ℹ️ Only 6 normal day(s) found")
}

func TestFormatReport_EscapesHTML(t *testing.T) {
	rep := sampleReport()
	rep.Source = "<script>"
	msg := FormatReport(rep)
	assert.NotContains(t, msg, "<script>")
	assert.Contains(t, msg, "&lt;script&gt;")
}

func TestFormatPhase(t *testing.T) {
	now := model.MoonPhase{Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Illumination: 25, CyclePosition: 0.125}
	next := model.MoonPhase{Date: time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC), Illumination: 99.5, CyclePosition: 0.5, IsFullMoon: true}

	msg := FormatPhase(now, next, true)
	assert.Contains(t, msg, "Waxing Crescent")
	assert.Contains(t, msg, "Illumination: 25.0%")
	assert.Contains(t, msg, "Next full moon day: 2024-06-22 (in 12 days)")
	assert.NotContains(t, FormatPhase(now, next, false), "Next full moon")
}

func TestFormatPoint(t *testing.T) {
	btc, _ := model.LookupAsset("Bitcoin")
	chg := -2.5
	p := model.CombinedPoint{
		Date:        time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC),
		Price:       model.PriceBar{Close: 64000},
		Moon:        model.MoonPhase{Illumination: 99.5, CyclePosition: 0.5, IsFullMoon: true},
		PriceChange: &chg,
	}
	msg := FormatPoint(btc, p)
	assert.Contains(t, msg, "Close: 64000.00")
	assert.Contains(t, msg, "Change: -2.50%")
	assert.Contains(t, msg, "Full Moon (99.5%) 🌕")

	p.PriceChange = nil
	assert.Contains(t, FormatPoint(btc, p), "Change: n/a")
}

func TestFormatFullMoonDays(t *testing.T) {
	btc, _ := model.LookupAsset("Bitcoin")
	chg := 1.5
	points := []model.CombinedPoint{
		{Date: time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC), Price: model.PriceBar{Close: 63000}},
		{Date: time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC), Price: model.PriceBar{Close: 64000}, Moon: model.MoonPhase{IsFullMoon: true}, PriceChange: &chg},
	}
	msg := FormatFullMoonDays(btc, points)
	assert.Contains(t, msg, "2024-06-22  64000.00  +1.50%")
	assert.NotContains(t, msg, "2024-06-21")
	assert.Contains(t, FormatFullMoonDays(btc, nil), "none in range")
}

func TestRenderTerminal(t *testing.T) {
	out := RenderTerminal(sampleReport())
	assert.Contains(t, out, "Bitcoin (BTCUSDT) lunar correlation")
	assert.Contains(t, out, "+1.25%")
	assert.Contains(t, out, "[info] Only 6 normal day(s) found")
	assert.True(t, strings.Contains(out, "Cryptocurrency tends to perform 1.75% better"))
}
