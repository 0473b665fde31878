package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/veecerts/asset-api/internal/config"
	accountdomain "github.com/veecerts/asset-api/internal/domain/account"
	assetdomain "github.com/veecerts/asset-api/internal/domain/asset"
	folderdomain "github.com/veecerts/asset-api/internal/domain/folder"
	"github.com/veecerts/asset-api/internal/domain/pinning"
	subscriptiondomain "github.com/veecerts/asset-api/internal/domain/subscription"
	"github.com/veecerts/asset-api/internal/infrastructure/auth"
	"github.com/veecerts/asset-api/internal/infrastructure/database"
	ledgerclient "github.com/veecerts/asset-api/internal/infrastructure/ledger"
	"github.com/veecerts/asset-api/internal/infrastructure/logger"
	"github.com/veecerts/asset-api/internal/infrastructure/observability"
	pinningclient "github.com/veecerts/asset-api/internal/infrastructure/pinning"
	accountrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/account"
	assetrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/asset"
	clientrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/client"
	folderrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/folder"
	subscriptionrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/subscription"
	usagerepo "github.com/veecerts/asset-api/internal/infrastructure/repository/usage"
	"github.com/veecerts/asset-api/internal/interfaces/httpserver"
)

// @title Veecerts Asset API
// @version 1.0
// @description Asset pinning and NFT minting service
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	pinner, err := providePinner(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize pinning backend")
	}
	ledger := ledgerclient.NewClient(cfg, log)

	users := accountrepo.NewUserRepository(db)
	tokens := accountrepo.NewTokenRepository(db)
	clients := clientrepo.NewRepository(db)
	packages := subscriptionrepo.NewPackageRepository(db)
	subscriptions := subscriptionrepo.NewSubscriptionRepository(db)
	usages := usagerepo.NewRepository(db)
	folders := folderrepo.NewRepository(db)
	assets := assetrepo.NewRepository(db)

	authManager := auth.NewManager(cfg)
	accountService := accountdomain.NewService(users, tokens, authManager, cfg.AuthTokenTTL, log)
	subscriptionService := subscriptiondomain.NewService(packages, clients, subscriptions, cfg.SubscriptionTTL, log)
	folderService := folderdomain.NewService(folders, clients, pinner, ledger, log)
	assetService := assetdomain.NewService(assets, folders, clients, usages, pinner, ledger, log)

	httpServer := httpserver.New(cfg, log, db, authManager, accountService, subscriptionService, folderService, assetService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

// providePinner selects the pinning backend from configuration.
func providePinner(ctx context.Context, cfg *config.Config, log zerolog.Logger) (pinning.Pinner, error) {
	if cfg.IsS3Backend() {
		return pinningclient.NewS3Pinner(ctx, cfg, log)
	}
	return pinningclient.NewPinataClient(cfg, log), nil
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
