package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Goretzky/GuessTheFlag/internal/config"
	"github.com/Goretzky/GuessTheFlag/internal/delivery/telegram"
	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
	"github.com/Goretzky/GuessTheFlag/internal/infra/cache"
	"github.com/Goretzky/GuessTheFlag/internal/infra/postgres"
	"github.com/Goretzky/GuessTheFlag/internal/infra/postgres/repository"
	"github.com/Goretzky/GuessTheFlag/internal/logger"
	"github.com/Goretzky/GuessTheFlag/internal/service"
	"github.com/Goretzky/GuessTheFlag/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Bot.Debug

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "play", Description: "Start a new game"},
		{Command: "restart", Description: "Start over"},
		{Command: "score", Description: "Current score"},
		{Command: "stats", Description: "Your results"},
		{Command: "top", Description: "Leaderboard"},
		{Command: "help", Description: "How to play"},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var results service.ResultStore
	if cfg.DB.Enabled() {
		dsn, err := cfg.DB.DSN()
		if err != nil {
			lg.Fatal("invalid database config", zap.Error(err))
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			lg.Fatal("failed to prepare database schema", zap.Error(err))
		}

		results = repository.NewResultStore(pool)
		lg.Info("game results are stored in postgres")
	} else {
		results = storage.NewResultStorage()
		lg.Warn("DATABASE_URL is not set, game results are kept in memory")
	}

	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			lg.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()

		results = cache.NewLeaderboardCache(results, client, cfg.Redis.LeaderboardTTL, lg)
		lg.Info("leaderboards are cached in redis")
	}

	catalog := entities.DefaultCatalog()

	games := service.NewGameService(
		catalog,
		storage.NewGameStorage(),
		results,
		service.GameConfig{
			TotalRounds: cfg.Game.TotalRounds,
			IdleTTL:     cfg.Game.IdleTTL,
		},
		lg,
	)

	go func() {
		if err := games.StartSweeper(ctx, cfg.Game.SweepSchedule); err != nil {
			lg.Error("idle sweeper stopped", zap.Error(err))
		}
	}()

	handler := telegram.NewHandler(bot, lg, games, catalog, telegram.Options{
		RevealDelay:     cfg.Game.RevealDelay,
		TotalRounds:     cfg.Game.TotalRounds,
		LeaderboardSize: cfg.Game.LeaderboardSize,
	})

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
}
