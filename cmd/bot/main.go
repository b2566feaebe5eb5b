package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/dark-horizons-bot/internal/config"
	"github.com/aliskhannn/dark-horizons-bot/internal/delivery/telegram"
	"github.com/aliskhannn/dark-horizons-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/dark-horizons-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/dark-horizons-bot/internal/logger"
	"github.com/aliskhannn/dark-horizons-bot/internal/repository"
	"github.com/aliskhannn/dark-horizons-bot/internal/service"
	"github.com/aliskhannn/dark-horizons-bot/internal/storage"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A broken catalog is fatal: every quiz depends on it.
	catalog, err := repository.NewCatalogRepository(cfg.QuizzesJSONPath)
	if err != nil {
		lg.Fatal("failed to load quiz catalog",
			zap.String("path", cfg.QuizzesJSONPath),
			zap.Error(err),
		)
	}
	lg.Info("quiz catalog loaded", zap.Strings("topics", catalog.Topics()))

	var (
		userRepo   service.UserRepository   = storage.NewUserStorage()
		resultRepo service.ResultRepository = storage.NewResultStorage()
	)
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err = postgres.Migrate(ctx, postgres.NewTransactor(pool)); err != nil {
			lg.Fatal("failed to apply migrations", zap.Error(err))
		}

		userRepo = pgrepo.NewUserRepository(pool)
		resultRepo = pgrepo.NewResultRepository(pool)
	} else {
		lg.Warn("DATABASE_URL is not set, users and results are kept in memory")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Bot.Debug
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Выбрать тему викторины",
		},
		{
			Command:     "results",
			Description: "Лучшие результаты",
		},
		{
			Command:     "help",
			Description: "Помощь",
		},
	}
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	quizService := service.NewQuizService(catalog, storage.NewSessionStore(), lg.Named("quiz"))
	userService := service.NewUserService(userRepo)
	resultService := service.NewResultService(resultRepo)

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		quizService,
		userService,
		resultService,
		telegram.Options{
			UpdateTimeout: cfg.Bot.UpdateTimeout,
			Workers:       cfg.Bot.Workers,
		},
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
