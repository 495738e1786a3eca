package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"LunarSentinel/internal/analyzer"
	"LunarSentinel/internal/calculator"
	"LunarSentinel/internal/collector"
	"LunarSentinel/internal/config"
	"LunarSentinel/internal/logger"
	"LunarSentinel/internal/notifier"
	"LunarSentinel/internal/pipeline"
	"LunarSentinel/internal/scheduler"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync() //nolint:errcheck
	lg.Info("LunarSentinel starting", zap.String("config", cfgPath))

	// Init fetchers
	fetcher, err := collector.NewFetcherFromConfig(cfg.DataSource, cfg.Proxy, lg)
	if err != nil {
		lg.Fatal("init data sources", zap.Error(err))
	}
	lg.Info("data sources", zap.Strings("providers", cfg.DataSource.Providers))
	col := collector.NewCollector(fetcher, cfg.Analysis.MaxDataPoints, lg)

	phases, err := calculator.NewPhaseCalculator(cfg.Lunar, lg)
	if err != nil {
		lg.Fatal("init moon phase calculator", zap.Error(err))
	}
	runner := pipeline.NewRunner(col, phases, analyzer.New(cfg.Analysis.MinBucketSize, lg),
		cfg.Analysis.LookbackDays, cfg.Analysis.MaxDataPoints, lg)

	assets := pipeline.ResolveAssets(cfg.DataSource.Symbols, lg)
	if len(assets) == 0 {
		lg.Fatal("no supported assets configured", zap.Strings("symbols", cfg.DataSource.Symbols))
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// One-shot mode: print reports and exit
	if os.Getenv("ANALYZE_ONCE") == "true" {
		reports, err := runner.RunAll(ctx, assets)
		if err != nil {
			lg.Fatal("analysis", zap.Error(err))
		}
		for _, rep := range reports {
			fmt.Println(notifier.RenderTerminal(rep))
		}
		return
	}

	// Init Telegram notifier
	var sender scheduler.Sender = notifier.NewLogNotifier(lg)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn, err = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, lg)
		if err != nil {
			lg.Warn("init telegram notifier failed, logging reports instead", zap.Error(err))
		} else {
			sender = tn
		}
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, runner, sender, assets, lg)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		lg.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		lg.Info("telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		lg.Info("RUN_ON_START enabled, executing daily analysis now")
		go sched.RunDailyNow()
	}

	lg.Info("LunarSentinel is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	lg.Info("shutdown signal received, stopping...")
}
