package model

import "time"

// AnalysisResult holds full-moon vs normal-day aggregates.
type AnalysisResult struct {
	FullMoonAvgChange  float64
	NormalDayAvgChange float64
	FullMoonCount      int
	NormalDayCount     int
	TotalDataPoints    int
}

// Difference is the full-moon average minus the normal-day average.
func (r AnalysisResult) Difference() float64 {
	return r.FullMoonAvgChange - r.NormalDayAvgChange
}

// FullMoonPercentage is the share of full-moon days among analysed points.
func (r AnalysisResult) FullMoonPercentage() float64 {
	if r.TotalDataPoints == 0 {
		return 0
	}
	return float64(r.FullMoonCount) / float64(r.TotalDataPoints) * 100
}

// HasSufficientData reports whether both buckets are non-empty.
func (r AnalysisResult) HasSufficientData() bool {
	return r.FullMoonCount >= 1 && r.NormalDayCount >= 1
}

// Interpretation classifies the difference between buckets.
type Interpretation string

const (
	NoSignificantDifference Interpretation = "no significant difference"
	FullMoonOutperforms     Interpretation = "full moon days outperform"
	NormalDaysOutperform    Interpretation = "normal days outperform"
)

// DiagnosticKind is the severity of a Diagnostic.
type DiagnosticKind string

const (
	DiagnosticError   DiagnosticKind = "error"
	DiagnosticWarning DiagnosticKind = "warning"
	DiagnosticInfo    DiagnosticKind = "info"
)

// Diagnostic explains a data shortfall to the caller.
type Diagnostic struct {
	Kind       DiagnosticKind
	Message    string
	Suggestion string
}

// Summary is the presentation-ready digest of an AnalysisResult.
type Summary struct {
	TotalPeriods       int
	FullMoonPeriods    int
	NormalPeriods      int
	FullMoonPercentage float64
	AverageDifference  float64
	Interpretation     Interpretation
	Text               string
}

// Performer names the better bucket in a comparison.
type Performer string

const (
	PerformerFullMoon Performer = "full_moon"
	PerformerNormal   Performer = "normal"
	PerformerEqual    Performer = "equal"
)

// PeriodComparison compares full-moon and normal-day averages.
type PeriodComparison struct {
	Available        bool // false when either bucket is empty
	FullMoonAvg      float64
	NormalAvg        float64
	Difference       float64
	BetterPerformer  Performer
	PerformanceRatio float64
}

// FullMoonPerformance breaks down price changes on full-moon days.
type FullMoonPerformance struct {
	Days         int
	AvgChange    float64
	PositiveDays int
	NegativeDays int
	NeutralDays  int
	WinRate      float64
}

// Report is the output of one analysis run for an asset.
type Report struct {
	RunID       string
	Asset       Asset
	Source      string
	GeneratedAt time.Time
	Points      []CombinedPoint
	Result      AnalysisResult
	Summary     Summary
	Comparison  PeriodComparison
	FullMoon    FullMoonPerformance
	Diagnostics []Diagnostic
	DataSummary DataSummary
}
