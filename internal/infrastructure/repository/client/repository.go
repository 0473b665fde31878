package client

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/domain/subscription"
	"github.com/veecerts/asset-api/internal/infrastructure/database/entities"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// Repository handles client persistence and the active-package lookup shared
// by the asset, folder and subscription services.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUserID(ctx context.Context, userID int64) (*account.Client, error) {
	var entity entities.Client
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find client by user", err)
	}
	client := mapClient(entity)
	return &client, nil
}

func (r *Repository) Create(ctx context.Context, client *account.Client) error {
	entity := entities.Client{
		UUID:          client.UUID,
		UserID:        client.UserID,
		APISecretHash: client.APISecretHash,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to create client", err)
	}
	client.ID = entity.ID
	client.DateAdded = entity.DateAdded
	client.LastUpdated = entity.LastUpdated
	return nil
}

func (r *Repository) SetActiveSubscription(ctx context.Context, clientID, subscriptionID int64) error {
	err := r.db.WithContext(ctx).
		Model(&entities.Client{}).
		Where("id = ?", clientID).
		Update("active_subscription_id", subscriptionID).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to set active subscription", err)
	}
	return nil
}

// ActivePackage resolves the package behind the client's active subscription.
// A nil package with nil error means the client never subscribed. Expiry is
// not checked here; the pointer is only moved by a new purchase.
func (r *Repository) ActivePackage(ctx context.Context, clientID int64) (*subscription.Package, error) {
	var entity entities.SubscriptionPackage
	err := r.db.WithContext(ctx).
		Joins("JOIN client_package_subscriptions ON client_package_subscriptions.subscription_package_id = subscription_packages.id").
		Joins("JOIN clients ON clients.active_subscription_id = client_package_subscriptions.id").
		Where("clients.id = ?", clientID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find active package", err)
	}
	pkg := subscription.Package{
		ID:                 entity.ID,
		UUID:               entity.UUID,
		Name:               entity.Name,
		Price:              entity.Price,
		StorageCapacityMb:  entity.StorageCapacityMb,
		MonthlyRequests:    entity.MonthlyRequests,
		MaxAllowedSessions: entity.MaxAllowedSessions,
		DateAdded:          entity.DateAdded,
		LastUpdated:        entity.LastUpdated,
	}
	return &pkg, nil
}

func mapClient(entity entities.Client) account.Client {
	return account.Client{
		ID:                   entity.ID,
		UUID:                 entity.UUID,
		UserID:               entity.UserID,
		ActiveSubscriptionID: entity.ActiveSubscriptionID,
		APISecretHash:        entity.APISecretHash,
		DateAdded:            entity.DateAdded,
		LastUpdated:          entity.LastUpdated,
	}
}
