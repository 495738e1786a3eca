package notifier

import (
	"fmt"
	"html"
	"strings"

	"LunarSentinel/internal/model"
)

var diagnosticIcons = map[model.DiagnosticKind]string{
	model.DiagnosticError:   "❌",
	model.DiagnosticWarning: "⚠️",
	model.DiagnosticInfo:    "ℹ️",
}

// FormatReport formats an analysis report into a Telegram HTML message.
func FormatReport(rep *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🌕 <b>%s Lunar Report</b> | %s\n", html.EscapeString(rep.Asset.Name), rep.GeneratedAt.Format("2006-01-02")))
	if rep.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s", html.EscapeString(rep.Source)))
		if rep.Source == "demo" {
			b.WriteString(" (simulated data)")
		}
		b.WriteString("\n")
	}
	ds := rep.DataSummary
	if ds.TotalPoints > 0 {
		b.WriteString(fmt.Sprintf("Period: %s → %s (%d days)\n", ds.From.Format("2006-01-02"), ds.To.Format("2006-01-02"), ds.TotalPoints))
	}
	b.WriteString("\n")

	res := rep.Result
	b.WriteString("📊 <b>Average daily change:</b>\n")
	b.WriteString(fmt.Sprintf("  Full moon: %+.2f%% (%d days)\n", res.FullMoonAvgChange, res.FullMoonCount))
	b.WriteString(fmt.Sprintf("  Normal:    %+.2f%% (%d days)\n", res.NormalDayAvgChange, res.NormalDayCount))
	b.WriteString(fmt.Sprintf("  Difference: %+.2f%%\n", res.Difference()))
	b.WriteString(fmt.Sprintf("  Full moon share: %.1f%%\n\n", res.FullMoonPercentage()))

	if fm := rep.FullMoon; fm.Days > 0 {
		b.WriteString(fmt.Sprintf("🎯 Full moon win rate: %.1f%% (%d up / %d down / %d flat)\n",
			fm.WinRate, fm.PositiveDays, fm.NegativeDays, fm.NeutralDays))
	}
	if c := rep.Comparison; c.Available && c.BetterPerformer != model.PerformerEqual && c.PerformanceRatio != 0 {
		b.WriteString(fmt.Sprintf("⚖️ Better performer: %s (ratio %.2f)\n", performerLabel(c.BetterPerformer), c.PerformanceRatio))
	}

	b.WriteString(fmt.Sprintf("\n💡 %s\n", html.EscapeString(rep.Summary.Text)))

	if len(rep.Diagnostics) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatDiagnostics(rep.Diagnostics))
	}
	return b.String()
}

// FormatDiagnostics lists diagnostics with their suggestions.
func FormatDiagnostics(diags []model.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(fmt.Sprintf("%s %s\n   %s\n", diagnosticIcons[d.Kind], html.EscapeString(d.Message), html.EscapeString(d.Suggestion)))
	}
	return b.String()
}

// FormatPhase describes a moon phase and the next full moon.
func FormatPhase(now model.MoonPhase, next model.MoonPhase, hasNext bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌙 <b>%s</b> | %s\n", now.PhaseName(), now.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Illumination: %.1f%%\n", now.Illumination))
	if now.IsFullMoon {
		b.WriteString("Today counts as a full moon day.\n")
	}
	if hasNext {
		days := int(next.Date.Sub(now.Date).Hours() / 24)
		b.WriteString(fmt.Sprintf("Next full moon day: %s (in %d days)\n", next.Date.Format("2006-01-02"), days))
	}
	return b.String()
}

// FormatPoint describes a single cached data point.
func FormatPoint(asset model.Asset, p model.CombinedPoint) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>%s</b> | %s\n", html.EscapeString(asset.Name), p.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Close: %.2f\n", p.Price.Close))
	if p.PriceChange != nil {
		b.WriteString(fmt.Sprintf("Change: %+.2f%%\n", *p.PriceChange))
	} else {
		b.WriteString("Change: n/a\n")
	}
	b.WriteString(fmt.Sprintf("Moon: %s (%.1f%%)", p.Moon.PhaseName(), p.Moon.Illumination))
	if p.Moon.IsFullMoon {
		b.WriteString(" 🌕")
	}
	b.WriteString("\n")
	return b.String()
}

// FormatFullMoonDays lists full moon days with their price change.
func FormatFullMoonDays(asset model.Asset, points []model.CombinedPoint) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌕 <b>%s full moon days</b>\n", html.EscapeString(asset.Name)))
	n := 0
	for _, p := range points {
		if !p.Moon.IsFullMoon {
			continue
		}
		n++
		chg := "n/a"
		if p.PriceChange != nil {
			chg = fmt.Sprintf("%+.2f%%", *p.PriceChange)
		}
		b.WriteString(fmt.Sprintf("  %s  %.2f  %s\n", p.Date.Format("2006-01-02"), p.Price.Close, chg))
	}
	if n == 0 {
		b.WriteString("  none in range\n")
	}
	return b.String()
}

func performerLabel(p model.Performer) string {
	switch p {
	case model.PerformerFullMoon:
		return "full moon days"
	case model.PerformerNormal:
		return "normal days"
	default:
		return "equal"
	}
}
