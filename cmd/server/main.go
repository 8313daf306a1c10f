package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/celebrityscoop868/sunpowerabc/internal/adapters/events/kafka"
	"github.com/celebrityscoop868/sunpowerabc/internal/adapters/grpc/handler"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/backendapi"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/onboarding"
	"github.com/celebrityscoop868/sunpowerabc/internal/platform/config"
	"github.com/celebrityscoop868/sunpowerabc/internal/platform/logging"
	"github.com/celebrityscoop868/sunpowerabc/internal/platform/server"
	"github.com/celebrityscoop868/sunpowerabc/internal/platform/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	opts := []onboarding.Option{
		onboarding.WithLogger(logger.Named("store")),
		onboarding.WithAdminEmail(cfg.Admin.Email),
		onboarding.WithLazySeeding(cfg.Storage.LazySeed),
	}
	if cfg.Events.Enabled() {
		publisher := kafka.NewPublisher(logger, cfg.Events.KafkaBrokers, cfg.Events.NotificationTopic)
		defer publisher.Close()
		opts = append(opts, onboarding.WithPublisher(publisher))
	}

	store := onboarding.NewStore(backend.Storage, nil, backend.Tx, opts...)
	onboardingHandler := handler.NewOnboardingGrpcHandler(store, backendapi.NewUnimplemented(), logger.Named("grpc"))
	grpcServer := server.New(cfg.Server.ListenAddr, onboardingHandler, logger.Named("server"))

	return grpcServer.Run(ctx)
}
