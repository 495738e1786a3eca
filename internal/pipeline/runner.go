// Package pipeline runs the fetch, combine and analyze stages for an asset.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"LunarSentinel/internal/analyzer"
	"LunarSentinel/internal/calculator"
	"LunarSentinel/internal/collector"
	"LunarSentinel/internal/model"
	"LunarSentinel/internal/processor"
)

// Runner produces analysis reports. It keeps one point cache per asset,
// replaced on every run.
type Runner struct {
	Collector    *collector.Collector
	Phases       *calculator.PhaseCalculator
	Analyzer     *analyzer.Analyzer
	LookbackDays int
	MaxPoints    int

	mu       sync.Mutex
	sessions map[string]*processor.Session
	logger   *zap.Logger
	now      func() time.Time
}

// NewRunner creates a Runner.
func NewRunner(col *collector.Collector, phases *calculator.PhaseCalculator, an *analyzer.Analyzer, lookbackDays, maxPoints int, logger *zap.Logger) *Runner {
	return &Runner{
		Collector:    col,
		Phases:       phases,
		Analyzer:     an,
		LookbackDays: lookbackDays,
		MaxPoints:    maxPoints,
		sessions:     map[string]*processor.Session{},
		logger:       logger,
		now:          time.Now,
	}
}

// Session returns the point cache for symbol, creating it on first use.
func (r *Runner) Session(symbol string) *processor.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[symbol]
	if !ok {
		s = processor.NewSession(r.MaxPoints, r.logger.With(zap.String("symbol", symbol)))
		r.sessions[symbol] = s
	}
	return s
}

// Run analyzes one asset. A failed fetch yields a report over no data rather
// than an error; only context cancellation is returned.
func (r *Runner) Run(ctx context.Context, asset model.Asset) (*model.Report, error) {
	log := r.logger.With(zap.String("symbol", asset.Symbol))

	series, err := r.Collector.Collect(ctx, asset, r.LookbackDays)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Error("collect price data", zap.Error(err))
		series.Bars = nil
	}

	dates := make([]time.Time, len(series.Bars))
	for i, b := range series.Bars {
		dates[i] = b.Date()
	}
	moons := r.Phases.ComputeMany(dates)

	sess := r.Session(asset.Symbol)
	points := sess.Combine(series.Bars, moons)
	for _, issue := range processor.Validate(points) {
		log.Warn("combined data issue", zap.String("issue", issue))
	}

	res := r.Analyzer.Analyze(points)
	report := &model.Report{
		RunID:       uuid.NewString(),
		Asset:       asset,
		Source:      series.Source,
		GeneratedAt: r.now(),
		Points:      points,
		Result:      res,
		Summary:     analyzer.Summarize(res),
		Comparison:  analyzer.ComparePeriods(res),
		FullMoon:    analyzer.FullMoonPerformance(points),
		Diagnostics: r.Analyzer.Diagnose(res),
		DataSummary: sess.Summary(),
	}
	log.Info("analysis run finished",
		zap.String("run_id", report.RunID),
		zap.String("source", report.Source),
		zap.Int("points", len(points)),
		zap.String("interpretation", string(report.Summary.Interpretation)))
	return report, nil
}

// RunAll analyzes assets concurrently and returns reports in input order.
func (r *Runner) RunAll(ctx context.Context, assets []model.Asset) ([]*model.Report, error) {
	reports := make([]*model.Report, len(assets))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range assets {
		i, a := i, a
		g.Go(func() error {
			rep, err := r.Run(gctx, a)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// ResolveAssets maps configured names or symbols to assets, skipping unknown ones.
func ResolveAssets(names []string, logger *zap.Logger) []model.Asset {
	var assets []model.Asset
	for _, n := range names {
		a, ok := model.LookupAsset(n)
		if !ok {
			logger.Warn("unsupported asset ignored", zap.String("asset", n))
			continue
		}
		assets = append(assets, a)
	}
	return assets
}
