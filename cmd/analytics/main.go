package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Spok95/school-analytics/internal/config"
	"github.com/Spok95/school-analytics/internal/dashboard"
	"github.com/Spok95/school-analytics/internal/kvstore"
	"github.com/Spok95/school-analytics/internal/loader"
	"github.com/Spok95/school-analytics/internal/logging"
	"github.com/Spok95/school-analytics/internal/observability"
)

var release = "dev"

func main() {
	// .env необязателен
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		lg.Base.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := kvstore.Open(ctx, cfg, lg.Component("store"))
	if err != nil {
		observability.CaptureErr(err)
		lg.Base.Error("store open failed", zap.String("backend", cfg.StoreBackend), zap.Error(err))
		return
	}
	defer func() { _ = store.Close() }()

	cli := &commandLine{
		cfg:    cfg,
		log:    lg,
		store:  store,
		loader: loader.New(store.Store, lg.Component("loader")),
		opts: dashboard.Options{
			Location:    cfg.Location,
			TrendWindow: cfg.TrendWindow,
			RankingSize: cfg.RankingSize,
		},
		out: os.Stdout,
	}
	if err := cli.run(ctx, os.Args); err != nil && !errors.Is(err, errHelp) {
		lg.Base.Error("command failed", zap.Error(err))
		observability.CaptureErr(err)
	}
}
