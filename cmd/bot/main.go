package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"calorie-tracker-bot/internal/bot"
	"calorie-tracker-bot/internal/common/config"
	"calorie-tracker-bot/internal/common/logger"
	"calorie-tracker-bot/internal/features/diary/pending"
	sqliterepo "calorie-tracker-bot/internal/features/diary/repository/sqlite"
	"calorie-tracker-bot/internal/features/diary/service"
	"calorie-tracker-bot/internal/oracle"
	redisplatform "calorie-tracker-bot/internal/platform/redis"
	sqliteplatform "calorie-tracker-bot/internal/platform/sqlite"
	"calorie-tracker-bot/internal/platform/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init("calorie-tracker-bot", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := sqliteplatform.NewClient(cfg.SQLite.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer dbClient.Close()

	ledger := sqliterepo.NewSQLiteRepository(dbClient.GetDB())

	var pendingStore pending.Store
	if cfg.Redis.Addr != "" {
		redisClient, err := redisplatform.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		pendingStore = pending.NewRedisStore(redisClient, cfg.Redis.PendingTTL)
		logger.Info().Dur("ttl", cfg.Redis.PendingTTL).Msg("Pending store: redis")
	} else {
		pendingStore = pending.NewMemoryStore()
		logger.Info().Msg("Pending store: in-memory")
	}

	oracleClient := oracle.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	diary := service.NewDiaryService(ledger, pendingStore, oracleClient)

	tgClient := telegram.NewClient(cfg.Telegram.APIURL, cfg.Telegram.BotToken)
	me, err := tgClient.GetMe(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to reach Telegram")
	}
	logger.Info().Str("username", me.Username).Msg("Bot authenticated")

	if err := tgClient.SetMyCommands(ctx, bot.Commands()); err != nil {
		logger.Warn().Err(err).Msg("Failed to register command menu")
	}

	dispatcher := bot.NewDispatcher(tgClient, diary)

	switch cfg.Telegram.Mode {
	case "webhook":
		runWebhook(ctx, cfg, tgClient, dispatcher, dbClient)
	default:
		runPolling(ctx, cfg, tgClient, dispatcher)
	}

	logger.Info().Msg("Shutdown complete")
}

func runPolling(ctx context.Context, cfg *config.Config, tgClient *telegram.Client, dispatcher *bot.Dispatcher) {
	// Stale webhooks block getUpdates; clear them before polling.
	if err := tgClient.DeleteWebhook(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to delete webhook")
	}

	poller := bot.NewPoller(tgClient, dispatcher, cfg.Telegram.PollTimeoutSec)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Poller stopped")
	}
}

func runWebhook(ctx context.Context, cfg *config.Config, tgClient *telegram.Client, dispatcher *bot.Dispatcher, health bot.HealthChecker) {
	if cfg.Telegram.WebhookURL == "" {
		logger.Fatal().Msg("WEBHOOK_URL is required in webhook mode")
	}
	if err := tgClient.SetWebhook(ctx, cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret); err != nil {
		logger.Fatal().Err(err).Msg("Failed to set webhook")
	}

	router := bot.NewWebhookRouter(dispatcher, cfg.Telegram.WebhookSecret, health, cfg.Debug)
	srv := &http.Server{Addr: cfg.Telegram.HTTPAddr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Telegram.HTTPAddr).Msg("Webhook server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error().Err(err).Msg("Webhook server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Webhook server shutdown failed")
	}
}
