package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/veecerts/asset-api/internal/domain/subscription"
	"github.com/veecerts/asset-api/internal/infrastructure/database/entities"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// PackageRepository handles subscription package persistence.
type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) FindByUUID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	var entity entities.SubscriptionPackage
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find package", err)
	}
	pkg := mapPackage(entity)
	return &pkg, nil
}

func (r *PackageRepository) List(ctx context.Context) ([]domain.Package, error) {
	var rows []entities.SubscriptionPackage
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to list packages", err)
	}
	packages := make([]domain.Package, 0, len(rows))
	for _, row := range rows {
		packages = append(packages, mapPackage(row))
	}
	return packages, nil
}

func (r *PackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	entity := entities.SubscriptionPackage{
		UUID:               pkg.UUID,
		Name:               pkg.Name,
		Price:              pkg.Price,
		StorageCapacityMb:  pkg.StorageCapacityMb,
		MonthlyRequests:    pkg.MonthlyRequests,
		MaxAllowedSessions: pkg.MaxAllowedSessions,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to create package", err)
	}
	pkg.ID = entity.ID
	pkg.DateAdded = entity.DateAdded
	pkg.LastUpdated = entity.LastUpdated
	return nil
}

func (r *PackageRepository) Update(ctx context.Context, id int64, patch domain.PackagePatch) (*domain.Package, error) {
	updates := map[string]any{
		"name":                 patch.Name,
		"price":                patch.Price,
		"storage_capacity_mb":  patch.StorageCapacityMb,
		"monthly_requests":     patch.MonthlyRequests,
		"max_allowed_sessions": patch.MaxAllowedSessions,
	}
	if err := r.db.WithContext(ctx).Model(&entities.SubscriptionPackage{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to update package", err)
	}

	var entity entities.SubscriptionPackage
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to reload package", err)
	}
	pkg := mapPackage(entity)
	return &pkg, nil
}

func mapPackage(entity entities.SubscriptionPackage) domain.Package {
	return domain.Package{
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
}

// SubscriptionRepository persists package purchases.
type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	entity := entities.ClientPackageSubscription{
		UUID:                  sub.UUID,
		ClientID:              sub.ClientID,
		SubscriptionPackageID: sub.PackageID,
		Amount:                sub.Amount,
		ExpiresAt:             sub.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to create subscription", err)
	}
	sub.ID = entity.ID
	sub.DateAdded = entity.DateAdded
	return nil
}
