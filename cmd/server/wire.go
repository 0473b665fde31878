//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/veecerts/asset-api/internal/config"
	accountdomain "github.com/veecerts/asset-api/internal/domain/account"
	assetdomain "github.com/veecerts/asset-api/internal/domain/asset"
	folderdomain "github.com/veecerts/asset-api/internal/domain/folder"
	ledgerdomain "github.com/veecerts/asset-api/internal/domain/ledger"
	subscriptiondomain "github.com/veecerts/asset-api/internal/domain/subscription"
	"github.com/veecerts/asset-api/internal/infrastructure/auth"
	"github.com/veecerts/asset-api/internal/infrastructure/database"
	ledgerclient "github.com/veecerts/asset-api/internal/infrastructure/ledger"
	"github.com/veecerts/asset-api/internal/infrastructure/logger"
	accountrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/account"
	assetrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/asset"
	clientrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/client"
	folderrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/folder"
	subscriptionrepo "github.com/veecerts/asset-api/internal/infrastructure/repository/subscription"
	usagerepo "github.com/veecerts/asset-api/internal/infrastructure/repository/usage"
	"github.com/veecerts/asset-api/internal/interfaces/httpserver"
)

var repositorySet = wire.NewSet(
	accountrepo.NewUserRepository,
	wire.Bind(new(accountdomain.UserRepository), new(*accountrepo.UserRepository)),
	accountrepo.NewTokenRepository,
	wire.Bind(new(accountdomain.TokenRepository), new(*accountrepo.TokenRepository)),
	clientrepo.NewRepository,
	wire.Bind(new(subscriptiondomain.ClientRepository), new(*clientrepo.Repository)),
	wire.Bind(new(assetdomain.ClientStore), new(*clientrepo.Repository)),
	wire.Bind(new(folderdomain.ClientStore), new(*clientrepo.Repository)),
	subscriptionrepo.NewPackageRepository,
	wire.Bind(new(subscriptiondomain.PackageRepository), new(*subscriptionrepo.PackageRepository)),
	subscriptionrepo.NewSubscriptionRepository,
	wire.Bind(new(subscriptiondomain.SubscriptionRepository), new(*subscriptionrepo.SubscriptionRepository)),
	usagerepo.NewRepository,
	wire.Bind(new(assetdomain.UsageStore), new(*usagerepo.Repository)),
	folderrepo.NewRepository,
	wire.Bind(new(folderdomain.Repository), new(*folderrepo.Repository)),
	wire.Bind(new(assetdomain.FolderStore), new(*folderrepo.Repository)),
	assetrepo.NewRepository,
	wire.Bind(new(assetdomain.Repository), new(*assetrepo.Repository)),
)

var domainSet = wire.NewSet(
	auth.NewManager,
	wire.Bind(new(accountdomain.TokenIssuer), new(*auth.Manager)),
	providePinner,
	ledgerclient.NewClient,
	wire.Bind(new(ledgerdomain.Service), new(*ledgerclient.Client)),
	provideAccountService,
	provideSubscriptionService,
	folderdomain.NewService,
	assetdomain.NewService,
)

// BuildApplication assembles the asset API with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		repositorySet,
		domainSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func provideAccountService(users accountdomain.UserRepository, tokens accountdomain.TokenRepository, issuer accountdomain.TokenIssuer, cfg *config.Config, log zerolog.Logger) *accountdomain.Service {
	return accountdomain.NewService(users, tokens, issuer, cfg.AuthTokenTTL, log)
}

func provideSubscriptionService(packages subscriptiondomain.PackageRepository, clients subscriptiondomain.ClientRepository, subscriptions subscriptiondomain.SubscriptionRepository, cfg *config.Config, log zerolog.Logger) *subscriptiondomain.Service {
	return subscriptiondomain.NewService(packages, clients, subscriptions, cfg.SubscriptionTTL, log)
}
