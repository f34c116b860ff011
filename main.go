package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/LarisaShirokikh/video-download-bot/bot"
	"github.com/LarisaShirokikh/video-download-bot/config"
	"github.com/LarisaShirokikh/video-download-bot/media"
	"github.com/LarisaShirokikh/video-download-bot/search"
	"github.com/LarisaShirokikh/video-download-bot/session"
	"github.com/LarisaShirokikh/video-download-bot/telegram"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := media.Install(ctx); err != nil {
		logger.Fatal("yt-dlp not available", zap.Error(err))
	}

	transport, err := telegram.New(cfg.TelegramToken, logger)
	if err != nil {
		logger.Fatal("failed to connect to telegram", zap.Error(err))
	}

	engine := bot.New(bot.Config{
		Sessions:      session.NewStore(),
		Fetcher:       media.NewYTDLP(cfg.DownloadDir, logger),
		Searcher:      search.NewClient(cfg.VKToken),
		Emitter:       transport,
		Logger:        logger,
		FetchTimeout:  cfg.FetchTimeout,
		SearchTimeout: cfg.SearchTimeout,
		DownloadSlots: cfg.MaxConcurrentDownloads,
	})

	transport.Run(ctx, engine)
	logger.Info("shutting down")
}
