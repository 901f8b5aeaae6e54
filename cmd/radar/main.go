package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"MarketRadar/internal/alert"
	"MarketRadar/internal/config"
	"MarketRadar/internal/fetch"
	"MarketRadar/internal/loader"
	"MarketRadar/internal/notifier"
	"MarketRadar/internal/recorder"
	"MarketRadar/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketRadar starting...")

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetch jobs
	funds := make([]fetch.Fund, 0, len(cfg.Funds))
	for _, f := range cfg.Funds {
		funds = append(funds, fetch.Fund{Slug: f.Slug, CIK: f.CIK, Name: f.Name})
	}
	filings := []fetch.Fetcher{
		fetch.NewCongressFetcher(cfg.Sources.HouseURL, cfg.Sources.SenateURL, cfg.DataDir, cfg.Proxy),
		fetch.NewFundsFetcher(funds, cfg.SEC.UserAgent, cfg.DataDir, cfg.Proxy),
		fetch.NewInsidersFetcher(cfg.DataDir),
	}
	markets := []fetch.Fetcher{
		fetch.NewMacroFetcher(cfg.DataDir, cfg.Proxy),
		fetch.NewSentimentFetcher(cfg.DataDir, cfg.Proxy),
		fetch.NewFlowsFetcher(cfg.DataDir),
	}

	// Init loader and evaluator over the published documents
	var source loader.Source
	if cfg.SourceURL != "" {
		source = loader.NewHTTPSource(cfg.SourceURL, cfg.Proxy)
	} else {
		source = loader.NewFileSource(cfg.DataDir)
	}
	log.Printf("[INFO] data source: %s", source.Name())
	ld := loader.New(source, cfg.FundSlugs())
	ev := alert.NewEvaluator(loader.NewFileSource("."), cfg.RulesFile)

	// Init notifier
	var n notifier.Notifier
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		log.Println("[WARN] telegram not configured, notifications disabled")
		n = notifier.NewNoopNotifier()
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, filings, markets, ld, ev, n, rec)
	if err := sched.RegisterAll(cfg.Schedule.FilingsCron, cfg.Schedule.MarketsCron, cfg.Schedule.EvaluationCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling for operator commands
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing all tasks now")
		go sched.RunAllNow()
	}

	log.Println("[INFO] MarketRadar is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketRadar stopped")
}
