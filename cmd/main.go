package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"bot-analytics-service/internal/config"
	"bot-analytics-service/internal/controller"
	"bot-analytics-service/internal/db"
	httpserver "bot-analytics-service/internal/http"
	"bot-analytics-service/internal/logger"
	"bot-analytics-service/internal/repository"
	"bot-analytics-service/internal/service"
	"bot-analytics-service/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackFatal(err, "load config")
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	botRepo := repository.NewBotRepository(pool, log)
	interactionRepo := repository.NewInteractionRepository(pool, log)
	worker := service.NewInteractionWorker(interactionRepo, log, cfg.WorkerBufferSize, cfg.WorkerBatchSize, cfg.WorkerFlushEvery)

	var validator telegram.TokenValidator
	if cfg.TelegramValidation {
		validator = telegram.NewTokenValidator()
	}

	analytics := service.NewAnalyticsService(botRepo, interactionRepo, worker, validator, log, cfg.FutureTolerance)
	analyticsController := controller.NewAnalyticsController(analytics)

	server := httpserver.NewServer(cfg, analyticsController)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", cfg.HTTPPort).Msg("starting server")
	if err := server.Listen(cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}

	worker.Shutdown()
}

func fallbackFatal(err error, msg string) {
	l := zerolog.New(os.Stderr)
	l.Fatal().Err(err).Msg(msg)
}
