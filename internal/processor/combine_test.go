package processor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LunarSentinel/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func bar(t time.Time, close float64) model.PriceBar {
	return model.PriceBar{Time: t, Open: close, High: close, Low: close, Close: close, Symbol: "BTCUSDT"}
}

func moon(t time.Time, illum float64) model.MoonPhase {
	return model.MoonPhase{Date: t, Illumination: illum, IsFullMoon: illum > 98}
}

func TestCombine_InnerJoin(t *testing.T) {
	prices := []model.PriceBar{bar(day(1), 100), bar(day(2), 105), bar(day(5), 90)}
	moons := []model.MoonPhase{moon(day(1), 10), moon(day(2), 99), moon(day(3), 20)}

	points := Combine(prices, moons)
	require.Len(t, points, 2)
	assert.LessOrEqual(t, len(points), min(len(prices), len(moons)))
	assert.Equal(t, day(1), points[0].Date)
	assert.Equal(t, day(2), points[1].Date)
	assert.True(t, points[1].Moon.IsFullMoon)
	for _, p := range points {
		assert.Nil(t, p.PriceChange)
	}
}

func TestCombine_StripsTimeOfDay(t *testing.T) {
	prices := []model.PriceBar{bar(day(2).Add(15*time.Hour), 105)}
	moons := []model.MoonPhase{moon(day(2).Add(3*time.Hour), 50)}

	points := Combine(prices, moons)
	require.Len(t, points, 1)
	assert.Equal(t, day(2), points[0].Date)
}

func TestCombine_SortsAndKeepsDuplicateBars(t *testing.T) {
	prices := []model.PriceBar{
		bar(day(3), 95),
		bar(day(1), 100),
		bar(day(1).Add(12*time.Hour), 101),
	}
	moons := []model.MoonPhase{moon(day(1), 10), moon(day(3), 20)}

	points := Combine(prices, moons)
	require.Len(t, points, 3)
	assert.Equal(t, 100.0, points[0].Price.Close)
	assert.Equal(t, 101.0, points[1].Price.Close)
	assert.Equal(t, 95.0, points[2].Price.Close)
}

func TestCombine_DuplicateMoonLastWins(t *testing.T) {
	prices := []model.PriceBar{bar(day(1), 100)}
	moons := []model.MoonPhase{moon(day(1), 10), moon(day(1), 99)}

	points := Combine(prices, moons)
	require.Len(t, points, 1)
	assert.Equal(t, 99.0, points[0].Moon.Illumination)
}

func TestCombine_EmptyInputs(t *testing.T) {
	assert.Empty(t, Combine(nil, []model.MoonPhase{moon(day(1), 1)}))
	assert.Empty(t, Combine([]model.PriceBar{bar(day(1), 1)}, nil))
	assert.NotNil(t, Combine(nil, nil))
}
