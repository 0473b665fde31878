package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/infrastructure/database/entities"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// UserRepository handles user persistence.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find user by email", err)
	}
	user := mapUser(entity)
	return &user, nil
}

func (r *UserRepository) FindByUUID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find user by uuid", err)
	}
	user := mapUser(entity)
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	entity := entities.User{
		UUID:          user.UUID,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		WalletAddress: user.WalletAddress,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to create user", err)
	}
	user.ID = entity.ID
	user.DateAdded = entity.DateAdded
	user.LastUpdated = entity.LastUpdated
	return nil
}

func mapUser(entity entities.User) domain.User {
	return domain.User{
		ID:            entity.ID,
		UUID:          entity.UUID,
		Email:         entity.Email,
		PasswordHash:  entity.PasswordHash,
		WalletAddress: entity.WalletAddress,
		DateAdded:     entity.DateAdded,
		LastUpdated:   entity.LastUpdated,
	}
}
