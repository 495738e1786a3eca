package notifier

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"LunarSentinel/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D4AA"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#43BF6D"))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	diagStyles = map[model.DiagnosticKind]lipgloss.Style{
		model.DiagnosticError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		model.DiagnosticWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		model.DiagnosticInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
)

// RenderTerminal renders a report as a bordered box for stdout.
func RenderTerminal(rep *model.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s) lunar correlation", rep.Asset.Name, rep.Asset.Symbol)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("run %s · source %s · %s", rep.RunID, rep.Source, rep.GeneratedAt.Format("2006-01-02 15:04"))))
	b.WriteString("\n\n")

	res := rep.Result
	row := func(label string, avg float64, n int) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(signed(avg))
		b.WriteString(labelStyle.Render(fmt.Sprintf("  (%d days)", n)))
		b.WriteString("\n")
	}
	row("Full moon", res.FullMoonAvgChange, res.FullMoonCount)
	row("Normal", res.NormalDayAvgChange, res.NormalDayCount)
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", "Difference")))
	b.WriteString(signed(res.Difference()))
	b.WriteString("\n\n")
	b.WriteString(rep.Summary.Text)

	for _, d := range rep.Diagnostics {
		b.WriteString("\n")
		b.WriteString(diagStyles[d.Kind].Render(fmt.Sprintf("[%s] %s", d.Kind, d.Message)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("  " + d.Suggestion))
	}
	return boxStyle.Render(b.String())
}

func signed(v float64) string {
	s := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return upStyle.Render(s)
	case v < 0:
		return downStyle.Render(s)
	default:
		return s
	}
}
