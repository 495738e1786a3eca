package analyzer

import (
	"fmt"

	"LunarSentinel/internal/model"
)

// Diagnose explains why a result may be unreliable. An empty slice means the
// data is adequate.
func (a *Analyzer) Diagnose(res model.AnalysisResult) []model.Diagnostic {
	if res.TotalDataPoints == 0 {
		return []model.Diagnostic{{
			Kind:       model.DiagnosticError,
			Message:    "No data available for analysis",
			Suggestion: "Try selecting a different time period or check the data source connection.",
		}}
	}

	var out []model.Diagnostic
	if res.FullMoonCount == 0 {
		out = append(out, model.Diagnostic{
			Kind:       model.DiagnosticWarning,
			Message:    "No full moon days found in the selected period",
			Suggestion: "Try selecting a longer time period to include full moon days.",
		})
	} else if res.FullMoonCount < a.MinBucketSize {
		out = append(out, model.Diagnostic{
			Kind:       model.DiagnosticInfo,
			Message:    fmt.Sprintf("Only %d full moon day(s) found", res.FullMoonCount),
			Suggestion: "Results may not be statistically significant. Consider a longer time period.",
		})
	}

	if res.NormalDayCount == 0 {
		out = append(out, model.Diagnostic{
			Kind:       model.DiagnosticWarning,
			Message:    "No normal days found in the selected period",
			Suggestion: "This is unusual. Please check the data quality.",
		})
	} else if res.NormalDayCount < sparseNormalDays {
		out = append(out, model.Diagnostic{
			Kind:       model.DiagnosticInfo,
			Message:    fmt.Sprintf("Only %d normal day(s) found", res.NormalDayCount),
			Suggestion: "Results may be noisy. Consider a longer time period.",
		})
	}
	return out
}

// Blocking reports whether any diagnostic is an error.
func Blocking(diags []model.Diagnostic) bool {
	for _, d := range diags {
		if d.Kind == model.DiagnosticError {
			return true
		}
	}
	return false
}
