package handlers

import (
	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/config"
	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/domain/asset"
	"github.com/veecerts/asset-api/internal/domain/folder"
	"github.com/veecerts/asset-api/internal/domain/subscription"
)

// Provider wires HTTP handlers.
type Provider struct {
	Auth         *AuthHandler
	Subscription *SubscriptionHandler
	Folder       *FolderHandler
	Asset        *AssetHandler
}

func NewProvider(
	cfg *config.Config,
	accounts *account.Service,
	subscriptions *subscription.Service,
	folders *folder.Service,
	assets *asset.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Auth:         NewAuthHandler(accounts, log),
		Subscription: NewSubscriptionHandler(subscriptions, log),
		Folder:       NewFolderHandler(folders, assets, log),
		Asset:        NewAssetHandler(cfg, assets, log),
	}
}
