package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/app"
	"github.com/hanabenko/ticket-scraping-api/internal/config"
	"github.com/hanabenko/ticket-scraping-api/internal/logger"
	"github.com/hanabenko/ticket-scraping-api/internal/pipeline"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	var flags sourceFlags
	flag.StringVar(&flags.ticketing, "ticketing", "", "ticketing source file or URL")
	flag.StringVar(&flags.merch, "merch", "", "merch source file or URL")
	flag.StringVar(&flags.social, "social", "", "social source file or URL")
	flag.StringVar(&flags.streaming, "streaming", "", "streaming source file or URL")
	flag.StringVar(&flags.manifest, "sources", "", "YAML manifest listing connector/location pairs")
	recomputeUser := flag.Uint64("recompute-user", 0, "recompute attribution of one user ID at the current time")
	recomputeDate := flag.String("recompute-date", "", "recompute the rollup of one UTC day (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		exitCode = 1
		return
	}

	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		exitCode = 1
		return
	}
	defer func() { _ = log.Sync() }()

	sources, err := flags.sources()
	if err != nil {
		log.Error("Invalid sources", zap.Error(err))
		exitCode = 2
		return
	}

	var day time.Time
	if *recomputeDate != "" {
		day, err = time.Parse(time.DateOnly, *recomputeDate)
		if err != nil {
			log.Error("Invalid -recompute-date, expected YYYY-MM-DD", zap.String("value", *recomputeDate))
			exitCode = 2
			return
		}
	}

	if len(sources) == 0 && *recomputeUser == 0 && day.IsZero() {
		flag.Usage()
		exitCode = 2
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize components", zap.Error(err))
		exitCode = 1
		return
	}
	defer components.Close()

	if len(sources) > 0 {
		summary, err := components.Orchestrator.Run(ctx, sources...)
		printSummary(summary)
		if err != nil || summary.Failed() {
			exitCode = 1
		}
		if err != nil {
			log.Error("Pipeline run failed", zap.Error(err))
			return
		}
	}

	if *recomputeUser != 0 {
		if err := components.Attribution.Recompute(ctx, *recomputeUser, time.Now().UTC()); err != nil {
			log.Error("Attribution recompute failed", zap.Uint64("user_id", *recomputeUser), zap.Error(err))
			exitCode = 1
			return
		}
		log.Info("Attribution recomputed", zap.Uint64("user_id", *recomputeUser))
	}

	if !day.IsZero() {
		if err := components.Rollups.Recompute(ctx, day); err != nil {
			log.Error("Rollup recompute failed", zap.String("date", *recomputeDate), zap.Error(err))
			exitCode = 1
			return
		}
		log.Info("Rollup recomputed", zap.String("date", *recomputeDate))
	}
}

func printSummary(summary *pipeline.Summary) {
	if summary == nil {
		return
	}
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode summary: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
