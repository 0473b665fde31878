package folder

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/veecerts/asset-api/internal/domain/folder"
	"github.com/veecerts/asset-api/internal/infrastructure/database/entities"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// Repository handles folder persistence. Inserts carry a caller-assigned
// primary key (the ledger collection id).
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUUID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	var entity entities.Folder
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find folder", err)
	}
	f := mapFolder(entity)
	return &f, nil
}

func (r *Repository) ListByClient(ctx context.Context, clientID int64) ([]domain.Folder, error) {
	var rows []entities.Folder
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to list folders", err)
	}
	folders := make([]domain.Folder, 0, len(rows))
	for _, row := range rows {
		folders = append(folders, mapFolder(row))
	}
	return folders, nil
}

// Count returns the total folder count across all clients; it feeds the
// collection symbol sequence.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Folder{}).Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to count folders", err)
	}
	return count, nil
}

func (r *Repository) Create(ctx context.Context, folder *domain.Folder) error {
	entity := entities.Folder{
		ID:          folder.ID,
		UUID:        folder.UUID,
		ClientID:    folder.ClientID,
		Name:        folder.Name,
		Description: folder.Description,
		LogoHash:    folder.LogoHash,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to create folder", err)
	}
	folder.DateAdded = entity.DateAdded
	folder.LastUpdated = entity.LastUpdated
	return nil
}

func (r *Repository) UpdateNameDescription(ctx context.Context, id int64, name, description string) (*domain.Folder, error) {
	updates := map[string]any{"name": name, "description": description}
	if err := r.db.WithContext(ctx).Model(&entities.Folder{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to update folder", err)
	}

	var entity entities.Folder
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to reload folder", err)
	}
	f := mapFolder(entity)
	return &f, nil
}

func mapFolder(entity entities.Folder) domain.Folder {
	return domain.Folder{
		ID:          entity.ID,
		UUID:        entity.UUID,
		ClientID:    entity.ClientID,
		Name:        entity.Name,
		Description: entity.Description,
		LogoHash:    entity.LogoHash,
		DateAdded:   entity.DateAdded,
		LastUpdated: entity.LastUpdated,
	}
}
