package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	appModeration "github.com/veilmatch/moderation/pkg/app/moderation"
	"github.com/veilmatch/moderation/pkg/common"
	"github.com/veilmatch/moderation/pkg/config"
	"github.com/veilmatch/moderation/pkg/detector"
	domain "github.com/veilmatch/moderation/pkg/domain/moderation"
	handlers "github.com/veilmatch/moderation/pkg/handlers/http"
	infraCache "github.com/veilmatch/moderation/pkg/infra/cache"
	"github.com/veilmatch/moderation/pkg/infra/database"
	infraLogger "github.com/veilmatch/moderation/pkg/infra/logger"
	"github.com/veilmatch/moderation/pkg/infra/prometheus"
	"github.com/veilmatch/moderation/pkg/infra/repository"
	"github.com/veilmatch/moderation/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.WithError(err).Warn("running with configuration defaults")
	}
	cfg := config.GetConfig()

	prometheus.Initialize()

	// Persistence is optional; without it verdicts live only in memory.
	var repo domain.Repository
	if cfg.Database.Enabled {
		db, err := database.NewDB(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			logger.Fatalf("failed to initialize database: %v", err)
		}
		repo = repository.NewModerationResultRepository(db)
	}

	// Redis is optional; without it queue-change events are not published.
	var publisher infraCache.EventPublisher
	var detectionCache *infraCache.TTLMap
	if cfg.Redis.Enabled {
		cacheClient, err := infraCache.NewClient(infraCache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatalf("failed to initialize redis: %v", err)
		}
		defer func() {
			if err := cacheClient.Close(); err != nil {
				logger.WithError(err).Error("failed to close redis client")
			}
		}()
		publisher = infraCache.NewRedisEventPublisher(cacheClient.Redis())
		detectionCache = cacheClient.CreateTTLMap(common.DetectionTTLName, common.DetectionCacheTTL)
	} else {
		detectionCache = infraCache.NewTTLMap(common.DetectionCacheTTL)
	}

	queueService := appModeration.NewQueueService(
		logger,
		detector.New(cfg.Detector),
		repo,
		publisher,
		detectionCache,
	)

	handlerTransport := handlers.HandlerTransport{
		SubmitContentHandler:   handlers.NewSubmitContentHandler(logger, queueService),
		ListQueueHandler:       handlers.NewListQueueHandler(logger, queueService),
		ReviewQueueItemHandler: handlers.NewReviewQueueItemHandler(logger, queueService),
		RemoveQueueItemHandler: handlers.NewRemoveQueueItemHandler(logger, queueService),
		QueueStatsHandler:      handlers.NewQueueStatsHandler(logger, queueService),
		GetVersionHandler:      handlers.NewGetVersionHandler(logger),
	}

	moderationServer := server.NewModerationServer(server.ModerationServerDI{
		HandlerTransport: handlerTransport,
		Config:           cfg,
		Logger:           logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(moderationServer.Run)
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down moderation server")
		return moderationServer.Shutdown()
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("moderation server stopped")
	}
}
