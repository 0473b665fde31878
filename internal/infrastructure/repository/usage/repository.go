package usage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veecerts/asset-api/internal/domain/asset"
	"github.com/veecerts/asset-api/internal/infrastructure/database/entities"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// Repository handles the per-client storage counter.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, clientID int64) (*asset.Usage, error) {
	var entity entities.ClientUsage
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find client usage", err)
	}
	u := mapUsage(entity)
	return &u, nil
}

// GetOrCreate returns the client's usage row, inserting a zero-valued one if
// none exists yet. Not atomic: two concurrent first uploads race on the
// unique client index and one insert fails.
func (r *Repository) GetOrCreate(ctx context.Context, clientID int64) (*asset.Usage, error) {
	existing, err := r.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	entity := entities.ClientUsage{
		UUID:     uuid.New(),
		ClientID: clientID,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to create client usage", err)
	}
	u := mapUsage(entity)
	return &u, nil
}

func (r *Repository) UpdateUsedStorage(ctx context.Context, clientID int64, usedMb float64) error {
	err := r.db.WithContext(ctx).
		Model(&entities.ClientUsage{}).
		Where("client_id = ?", clientID).
		Update("used_storage_mb", usedMb).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to update used storage", err)
	}
	return nil
}

func mapUsage(entity entities.ClientUsage) asset.Usage {
	return asset.Usage{
		ID:             entity.ID,
		UUID:           entity.UUID,
		ClientID:       entity.ClientID,
		UsedStorageMb:  entity.UsedStorageMb,
		ActiveSessions: entity.ActiveSessions,
		DateAdded:      entity.DateAdded,
		LastUpdated:    entity.LastUpdated,
	}
}
