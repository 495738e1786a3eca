package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"LunarSentinel/internal/model"
	"LunarSentinel/internal/notifier"
	"LunarSentinel/internal/pipeline"
)

// Sender delivers formatted messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron tasks and chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   *pipeline.Runner
	Notifier Sender
	Assets   []model.Asset
	Ctx      context.Context
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner *pipeline.Runner, sender Sender, assets []model.Asset, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Notifier: sender,
		Assets:   assets,
		Ctx:      ctx,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterAll registers the daily analysis and the full moon alert.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	// Full moon alert: every day 08:00 UTC
	if _, err := s.Cron.AddFunc("TZ=UTC 0 0 8 * * *", s.fullMoonAlert); err != nil {
		return fmt.Errorf("register full moon alert: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunDailyNow executes the daily task immediately (for RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	s.logger.Info("running daily analysis", zap.Int("assets", len(s.Assets)))
	reports, err := s.Runner.RunAll(s.Ctx, s.Assets)
	if err != nil {
		s.logger.Error("daily analysis", zap.Error(err))
		s.trySend(fmt.Sprintf("❌ Daily analysis failed: %v", err))
		return
	}
	for _, rep := range reports {
		s.trySend(notifier.FormatReport(rep))
	}
}

func (s *Scheduler) fullMoonAlert() {
	phase, err := s.Runner.Phases.Compute(model.DateOf(s.now()))
	if err != nil {
		s.logger.Error("compute today's phase", zap.Error(err))
		return
	}
	if !phase.IsFullMoon {
		return
	}
	s.trySend("🌕 <b>Full moon today</b>\n\n" + notifier.FormatPhase(phase, model.MoonPhase{}, false))
}

const helpText = "Available commands:\n" +
	"/analyze [asset] - run the correlation analysis\n" +
	"/phase - today's moon phase\n" +
	"/day YYYY-MM-DD [asset] - cached data for one day\n" +
	"/fullmoons [asset] [days] - recent full moon days, e.g. /fullmoons 30\n" +
	"/help - this message"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string, args []string) string {
	switch command {
	case "analyze":
		assets := s.Assets
		if len(args) > 0 {
			a, ok := model.LookupAsset(args[0])
			if !ok {
				return fmt.Sprintf("Unknown asset %q. Supported: %s", args[0], supportedAssets())
			}
			assets = []model.Asset{a}
		}
		reports, err := s.Runner.RunAll(ctx, assets)
		if err != nil {
			return fmt.Sprintf("❌ Analysis failed: %v", err)
		}
		parts := make([]string, len(reports))
		for i, rep := range reports {
			parts[i] = notifier.FormatReport(rep)
		}
		return strings.Join(parts, "\n\n")

	case "phase":
		today := model.DateOf(s.now())
		phase, err := s.Runner.Phases.Compute(today)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		next, ok := s.Runner.Phases.NextFullMoon(today)
		return notifier.FormatPhase(phase, next, ok)

	case "day":
		if len(args) == 0 {
			return "Usage: /day YYYY-MM-DD [asset]"
		}
		date, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", args[0])
		}
		asset, msg := s.assetArg(args[1:])
		if msg != "" {
			return msg
		}
		p, ok := s.Runner.Session(asset.Symbol).PointByDate(date)
		if !ok {
			return fmt.Sprintf("No cached data for %s on %s. Run /analyze first.", asset.Name, args[0])
		}
		return notifier.FormatPoint(asset, p)

	case "fullmoons":
		// A lone number is the day count for the default asset.
		if len(args) == 1 {
			if _, err := strconv.Atoi(args[0]); err == nil {
				args = []string{"", args[0]}
			}
		}
		var assetArgs []string
		if len(args) > 0 && args[0] != "" {
			assetArgs = args[:1]
		}
		asset, msg := s.assetArg(assetArgs)
		if msg != "" {
			return msg
		}
		days := 90
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return fmt.Sprintf("Invalid day count %q", args[1])
			}
			days = n
		}
		to := model.DateOf(s.now())
		points := s.Runner.Session(asset.Symbol).PointsInRange(to.AddDate(0, 0, -days), to)
		return notifier.FormatFullMoonDays(asset, points)

	default:
		return helpText
	}
}

// assetArg resolves an optional leading asset argument, defaulting to the first configured asset.
func (s *Scheduler) assetArg(args []string) (model.Asset, string) {
	if len(args) > 0 {
		a, ok := model.LookupAsset(args[0])
		if !ok {
			return model.Asset{}, fmt.Sprintf("Unknown asset %q. Supported: %s", args[0], supportedAssets())
		}
		return a, ""
	}
	if len(s.Assets) == 0 {
		return model.Asset{}, "No assets configured"
	}
	return s.Assets[0], ""
}

func supportedAssets() string {
	names := make([]string, len(model.Assets))
	for i, a := range model.Assets {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.logger.Error("send notification", zap.Error(err))
	}
}
