package asset

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/veecerts/asset-api/internal/domain/asset"
	"github.com/veecerts/asset-api/internal/infrastructure/database/entities"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// Repository handles asset persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUUID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	var entity entities.Asset
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find asset", err)
	}
	a := mapAsset(entity)
	return &a, nil
}

func (r *Repository) Create(ctx context.Context, asset *domain.Asset) error {
	entity := entities.Asset{
		UUID:        asset.UUID,
		ClientID:    asset.ClientID,
		FolderID:    asset.FolderID,
		NftID:       asset.NftID,
		IpfsHash:    asset.IpfsHash,
		SizeMb:      asset.SizeMb,
		ContentType: asset.ContentType,
		Name:        asset.Name,
		Description: asset.Description,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to create asset", err)
	}
	asset.ID = entity.ID
	asset.DateAdded = entity.DateAdded
	asset.LastUpdated = entity.LastUpdated
	return nil
}

func (r *Repository) Update(ctx context.Context, id int64, patch domain.UpdatePatch) (*domain.Asset, error) {
	updates := map[string]any{
		"nft_id":       patch.NftID,
		"folder_id":    patch.FolderID,
		"ipfs_hash":    patch.IpfsHash,
		"size_mb":      patch.SizeMb,
		"content_type": patch.ContentType,
		"name":         patch.Name,
		"description":  patch.Description,
	}
	if err := r.db.WithContext(ctx).Model(&entities.Asset{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to update asset", err)
	}

	var entity entities.Asset
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to reload asset", err)
	}
	a := mapAsset(entity)
	return &a, nil
}

func (r *Repository) ListByFolder(ctx context.Context, folderID int64) ([]domain.Asset, error) {
	var rows []entities.Asset
	if err := r.db.WithContext(ctx).Where("folder_id = ?", folderID).Order("id").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to list folder assets", err)
	}
	assets := make([]domain.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, mapAsset(row))
	}
	return assets, nil
}

func mapAsset(entity entities.Asset) domain.Asset {
	return domain.Asset{
		ID:          entity.ID,
		UUID:        entity.UUID,
		ClientID:    entity.ClientID,
		FolderID:    entity.FolderID,
		NftID:       entity.NftID,
		IpfsHash:    entity.IpfsHash,
		SizeMb:      entity.SizeMb,
		ContentType: entity.ContentType,
		Name:        entity.Name,
		Description: entity.Description,
		DateAdded:   entity.DateAdded,
		LastUpdated: entity.LastUpdated,
	}
}
