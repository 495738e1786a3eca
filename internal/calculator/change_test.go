package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LunarSentinel/internal/model"
)

func point(d time.Time, close float64) model.CombinedPoint {
	return model.CombinedPoint{Date: d, Price: model.PriceBar{Time: d, Close: close}}
}

func TestAnnotateChanges_Formula(t *testing.T) {
	points := AnnotateChanges([]model.CombinedPoint{
		point(day(2024, 1, 1), 100),
		point(day(2024, 1, 2), 110),
		point(day(2024, 1, 3), 99),
	})
	require.Len(t, points, 3)
	assert.Nil(t, points[0].PriceChange)
	require.NotNil(t, points[1].PriceChange)
	assert.InDelta(t, 10.0, *points[1].PriceChange, 1e-9)
	require.NotNil(t, points[2].PriceChange)
	assert.InDelta(t, -10.0, *points[2].PriceChange, 1e-9)
}

func TestAnnotateChanges_SortsInput(t *testing.T) {
	in := []model.CombinedPoint{
		point(day(2024, 1, 3), 95),
		point(day(2024, 1, 1), 100),
		point(day(2024, 1, 2), 105),
	}
	out := AnnotateChanges(in)
	assert.Equal(t, day(2024, 1, 1), out[0].Date)
	assert.Nil(t, out[0].PriceChange)
	assert.InDelta(t, 5.0, *out[1].PriceChange, 1e-9)
	assert.InDelta(t, -9.5238, *out[2].PriceChange, 1e-4)
	// input untouched
	assert.Equal(t, day(2024, 1, 3), in[0].Date)
	assert.Nil(t, in[0].PriceChange)
}

func TestAnnotateChanges_ZeroClose(t *testing.T) {
	out := AnnotateChanges([]model.CombinedPoint{
		point(day(2024, 1, 1), 0),
		point(day(2024, 1, 2), 10),
		point(day(2024, 1, 3), 20),
	})
	assert.Nil(t, out[0].PriceChange)
	assert.Nil(t, out[1].PriceChange)
	require.NotNil(t, out[2].PriceChange)
	assert.InDelta(t, 100.0, *out[2].PriceChange, 1e-9)
}

func TestAnnotateChanges_Empty(t *testing.T) {
	assert.Empty(t, AnnotateChanges(nil))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
}
