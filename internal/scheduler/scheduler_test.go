package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"LunarSentinel/internal/analyzer"
	"LunarSentinel/internal/calculator"
	"LunarSentinel/internal/collector"
	"LunarSentinel/internal/pipeline"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingSender) SendWithRetry(_ context.Context, text string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, text)
	return nil
}

var today = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T) (*Scheduler, *recordingSender) {
	t.Helper()
	log := zap.NewNop()
	demo := &collector.DemoFetcher{Now: func() time.Time { return today }}
	col := collector.NewCollector(collector.NewFallbackFetcher([]collector.Fetcher{demo}, 0, log), 1000, log)
	runner := pipeline.NewRunner(col, calculator.DefaultPhaseCalculator(log), analyzer.New(1, log), 120, 1000, log)
	sender := &recordingSender{}
	assets := pipeline.ResolveAssets([]string{"Bitcoin", "Ethereum"}, log)

	s := NewScheduler(context.Background(), runner, sender, assets, log)
	s.now = func() time.Time { return today.Add(9 * time.Hour) }
	return s, sender
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(t)
	require.NoError(t, s.RegisterAll("0 0 1 * * *"))
	assert.Len(t, s.Cron.Entries(), 2)

	s2, _ := newTestScheduler(t)
	assert.Error(t, s2.RegisterAll("not a cron"))
}

func TestDailyTask_SendsReportPerAsset(t *testing.T) {
	s, sender := newTestScheduler(t)
	s.RunDailyNow()

	require.Len(t, sender.msgs, 2)
	assert.Contains(t, sender.msgs[0], "Bitcoin Lunar Report")
	assert.Contains(t, sender.msgs[1], "Ethereum Lunar Report")
	assert.Contains(t, sender.msgs[0], "Source: demo")
}

func TestFullMoonAlert(t *testing.T) {
	s, sender := newTestScheduler(t)
	next, ok := s.Runner.Phases.NextFullMoon(today)
	require.True(t, ok)

	s.now = func() time.Time { return next.Date.Add(8 * time.Hour) }
	s.fullMoonAlert()
	require.Len(t, sender.msgs, 1)
	assert.Contains(t, sender.msgs[0], "Full moon today")

	s.now = func() time.Time { return next.Date.AddDate(0, 0, 7) }
	s.fullMoonAlert()
	assert.Len(t, sender.msgs, 1)
}

func TestHandleCommand(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	assert.Contains(t, s.HandleCommand(ctx, "help", nil), "/analyze")
	assert.Contains(t, s.HandleCommand(ctx, "start", nil), "Available commands")

	assert.Contains(t, s.HandleCommand(ctx, "analyze", []string{"Dogecoin"}), "Unknown asset")
	assert.Contains(t, s.HandleCommand(ctx, "day", []string{"2024-06-29"}), "No cached data")

	reply := s.HandleCommand(ctx, "analyze", []string{"btcusdt"})
	assert.Contains(t, reply, "Bitcoin Lunar Report")
	assert.NotContains(t, reply, "Ethereum")

	reply = s.HandleCommand(ctx, "day", []string{"2024-06-29", "Bitcoin"})
	assert.Contains(t, reply, "2024-06-29")
	assert.Contains(t, reply, "Close:")

	assert.Contains(t, s.HandleCommand(ctx, "day", []string{"29/06/2024"}), "Invalid date")
	assert.Contains(t, s.HandleCommand(ctx, "day", nil), "Usage")

	reply = s.HandleCommand(ctx, "fullmoons", []string{"Bitcoin", "120"})
	assert.Contains(t, reply, "Bitcoin full moon days")
	assert.NotContains(t, reply, "none in range")
	assert.Contains(t, s.HandleCommand(ctx, "fullmoons", []string{"Bitcoin", "abc"}), "Invalid day count")
	assert.Contains(t, s.HandleCommand(ctx, "fullmoons", []string{"120"}), "Bitcoin full moon days")
	assert.Contains(t, s.HandleCommand(ctx, "fullmoons", []string{"0"}), "Invalid day count")
	assert.Contains(t, s.HandleCommand(ctx, "fullmoons", []string{"Dogecoin"}), "Unknown asset")

	reply = s.HandleCommand(ctx, "phase", nil)
	assert.Contains(t, reply, "Illumination:")
	assert.Contains(t, reply, "Next full moon day:")
}

func TestSupportedAssets(t *testing.T) {
	assert.Equal(t, "Bitcoin, Ethereum, Solana", supportedAssets())
}
