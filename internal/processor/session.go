package processor

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"LunarSentinel/internal/calculator"
	"LunarSentinel/internal/model"
)

// Session holds the most recent combined sequence for one caller.
// The cache is replaced wholesale on every Combine, never merged.
type Session struct {
	mu        sync.RWMutex
	points    []model.CombinedPoint
	byDate    map[time.Time]int
	maxPoints int
	logger    *zap.Logger
}

// NewSession creates a session whose cache keeps at most maxPoints of the latest points.
// maxPoints <= 0 means unbounded.
func NewSession(maxPoints int, logger *zap.Logger) *Session {
	return &Session{maxPoints: maxPoints, logger: logger, byDate: map[time.Time]int{}}
}

// Combine joins prices with moons, annotates price changes and replaces the cache.
func (s *Session) Combine(prices []model.PriceBar, moons []model.MoonPhase) []model.CombinedPoint {
	if len(prices) == 0 {
		s.logger.Info("no price data to combine")
	}
	if len(moons) == 0 {
		s.logger.Info("no moon phase data to combine")
	}

	points := Combine(prices, moons)
	if dropped := len(prices) - len(points); dropped > 0 && len(moons) > 0 {
		s.logger.Debug("price bars without a matching moon phase dropped", zap.Int("dropped", dropped))
	}
	if s.maxPoints > 0 && len(points) > s.maxPoints {
		points = points[len(points)-s.maxPoints:]
	}
	points = calculator.AnnotateChanges(points)

	s.replace(points)
	s.logger.Info("combined price and moon data", zap.Int("points", len(points)))
	return s.Points()
}

func (s *Session) replace(points []model.CombinedPoint) {
	byDate := make(map[time.Time]int, len(points))
	for i, p := range points {
		byDate[p.Date] = i
	}

	s.mu.Lock()
	s.points = points
	s.byDate = byDate
	s.mu.Unlock()
}

// Points returns a copy of the cached sequence.
func (s *Session) Points() []model.CombinedPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CombinedPoint, len(s.points))
	copy(out, s.points)
	return out
}

// PointByDate looks up the cached point for the calendar date of t.
// When several points share the date the last one wins.
func (s *Session) PointByDate(t time.Time) (model.CombinedPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byDate[model.DateOf(t)]
	if !ok {
		return model.CombinedPoint{}, false
	}
	return s.points[i], true
}

// PointsInRange returns cached points dated within [from, to], inclusive.
func (s *Session) PointsInRange(from, to time.Time) []model.CombinedPoint {
	start, end := model.DateOf(from), model.DateOf(to)

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.CombinedPoint
	for _, p := range s.points {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Summary describes the cached sequence.
func (s *Session) Summary() model.DataSummary {
	return Summarize(s.Points())
}

// Summarize computes descriptive figures for a point sequence.
func Summarize(points []model.CombinedPoint) model.DataSummary {
	sum := model.DataSummary{TotalPoints: len(points)}
	if len(points) == 0 {
		return sum
	}

	sum.From = points[0].Date
	sum.To = points[len(points)-1].Date
	sum.MinClose = math.Inf(1)
	sum.MaxClose = math.Inf(-1)

	closes := make([]float64, 0, len(points))
	changes := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Moon.IsFullMoon {
			sum.FullMoonDays++
		}
		if p.PriceChange != nil {
			changes = append(changes, *p.PriceChange)
		}
		if p.Date.Before(sum.From) {
			sum.From = p.Date
		}
		if p.Date.After(sum.To) {
			sum.To = p.Date
		}
		closes = append(closes, p.Price.Close)
		sum.MinClose = math.Min(sum.MinClose, p.Price.Close)
		sum.MaxClose = math.Max(sum.MaxClose, p.Price.Close)
	}
	sum.PointsWithChange = len(changes)
	sum.AvgClose = calculator.Mean(closes)
	sum.AvgChange = calculator.Mean(changes)
	return sum
}

// Validate checks a combined sequence and returns a description of every problem found.
func Validate(points []model.CombinedPoint) []string {
	var issues []string
	for i, p := range points {
		if p.Price.Close <= 0 {
			issues = append(issues, fmt.Sprintf("point %d (%s): non-positive close %.4f", i, p.Date.Format("2006-01-02"), p.Price.Close))
		}
		if p.Moon.Illumination < 0 || p.Moon.Illumination > 100 {
			issues = append(issues, fmt.Sprintf("point %d (%s): illumination %.2f out of range", i, p.Date.Format("2006-01-02"), p.Moon.Illumination))
		}
		if !model.DateOf(p.Moon.Date).Equal(p.Date) {
			issues = append(issues, fmt.Sprintf("point %d (%s): moon phase dated %s", i, p.Date.Format("2006-01-02"), p.Moon.Date.Format("2006-01-02")))
		}
		if i > 0 && p.Date.Before(points[i-1].Date) {
			issues = append(issues, fmt.Sprintf("point %d (%s): out of chronological order", i, p.Date.Format("2006-01-02")))
		}
		if i == 0 && p.PriceChange != nil {
			issues = append(issues, fmt.Sprintf("point 0 (%s): first point carries a price change", p.Date.Format("2006-01-02")))
		}
	}
	return issues
}
